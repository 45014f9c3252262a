package triage

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/triage/triage/internal/domain/symptom"
	"github.com/triage/triage/internal/domain/vitals"
	"github.com/triage/triage/pkg/scoremap"
)

type Handler struct {
	engine *Engine
	dict   *symptom.Dictionary
}

func NewHandler(engine *Engine, dict *symptom.Dictionary) *Handler {
	return &Handler{engine: engine, dict: dict}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/diagnose", h.Diagnose)
	api.GET("/symptoms", h.ListSymptoms)
}

type diagnoseRequest struct {
	Symptoms       string `json:"symptoms"`
	Age            string `json:"age"`
	Gender         string `json:"gender"`
	Vitals         string `json:"vitals"`
	AdditionalInfo string `json:"additional_info"`
}

type diagnosisEntry struct {
	Name        string  `json:"name"`
	Probability float64 `json:"probability"`
}

type diagnoseResponse struct {
	Diagnoses         []diagnosisEntry `json:"diagnoses"`
	TopDiagnosis      string           `json:"top_diagnosis"`
	Confidence        string           `json:"confidence"`
	Treatment         string           `json:"treatment"`
	BillingCode       string           `json:"billing_code"`
	Rationale         string           `json:"rationale,omitempty"`
	Source            string           `json:"source"`
	AgeGroup          string           `json:"age_group"`
	Vitals            vitals.Reading   `json:"vitals,omitempty"`
	VitalWarnings     []string         `json:"vital_warnings,omitempty"`
	UnmatchedSymptoms []string         `json:"unmatched_symptoms,omitempty"`
}

func (h *Handler) Diagnose(c echo.Context) error {
	var req diagnoseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Symptoms == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "symptoms are required")
	}

	out, err := h.engine.Diagnose(c.Request().Context(), Request{
		Symptoms:       req.Symptoms,
		Age:            req.Age,
		Gender:         req.Gender,
		Vitals:         req.Vitals,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		var unrecognized *symptom.UnrecognizedError
		if errors.As(err, &unrecognized) {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"error":        err.Error(),
				"unrecognized": unrecognized.Terms,
			})
		}
		if errors.Is(err, symptom.ErrNoSymptomsRecognized) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, toResponse(out))
}

func (h *Handler) ListSymptoms(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"symptoms": h.dict.Suggestions(),
	})
}

func toResponse(out *Outcome) diagnoseResponse {
	resp := diagnoseResponse{
		Diagnoses:         toEntries(out.Diagnoses),
		TopDiagnosis:      out.TopDiagnosis,
		Confidence:        out.Confidence,
		Treatment:         out.Treatment,
		BillingCode:       out.BillingCode,
		Rationale:         out.Rationale,
		Source:            out.Source,
		AgeGroup:          string(out.AgeGroup),
		Vitals:            out.Vitals,
		VitalWarnings:     out.VitalWarnings,
		UnmatchedSymptoms: out.Unmatched,
	}
	return resp
}

func toEntries(entries []scoremap.Entry) []diagnosisEntry {
	out := make([]diagnosisEntry, len(entries))
	for i, e := range entries {
		out[i] = diagnosisEntry{Name: e.Name, Probability: e.Score}
	}
	return out
}
