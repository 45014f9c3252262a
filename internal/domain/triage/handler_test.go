package triage

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) (*echo.Echo, *Handler) {
	t.Helper()
	e := newTestEngine(t, engineOpts{})
	h := NewHandler(e, e.dict)

	srv := echo.New()
	h.RegisterRoutes(srv.Group("/api"))
	return srv, h
}

func TestDiagnoseEndpoint(t *testing.T) {
	srv, _ := newTestHandler(t)

	body := `{"symptoms": "chest pain, sweating, nausea", "age": "adult", "vitals": "HR:118"}`
	req := httptest.NewRequest(http.MethodPost, "/api/diagnose", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp diagnoseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.TopDiagnosis != "Acute Myocardial Infarction" {
		t.Errorf("top = %q", resp.TopDiagnosis)
	}
	if len(resp.Diagnoses) == 0 || resp.Diagnoses[0].Probability <= 0 {
		t.Errorf("diagnoses = %+v", resp.Diagnoses)
	}
	if resp.Source == "" || resp.Confidence == "" {
		t.Errorf("missing source/confidence: %+v", resp)
	}
	if resp.Vitals["HR"] != "118" {
		t.Errorf("vitals = %v, want parsed HR echoed back", resp.Vitals)
	}
}

func TestDiagnoseEndpointEmptySymptoms(t *testing.T) {
	srv, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/diagnose", strings.NewReader(`{"symptoms": ""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDiagnoseEndpointUnrecognizedSymptoms(t *testing.T) {
	srv, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/diagnose",
		strings.NewReader(`{"symptoms": "blormph, floop"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error        string   `json:"error"`
		Unrecognized []string `json:"unrecognized"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == "" {
		t.Error("missing error text")
	}
	if len(resp.Unrecognized) != 2 || resp.Unrecognized[0] != "blormph" || resp.Unrecognized[1] != "floop" {
		t.Errorf("unrecognized = %v, want the rejected terms", resp.Unrecognized)
	}
}

func TestSymptomsEndpoint(t *testing.T) {
	srv, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/symptoms", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp["symptoms"]) == 0 {
		t.Error("no symptom suggestions returned")
	}
}
