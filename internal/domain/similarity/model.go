// Package similarity retrieves reference cases that resemble the current
// patient and folds their outcomes back into the diagnosis scores.
package similarity

import (
	"github.com/google/uuid"

	"github.com/triage/triage/internal/domain/vitals"
)

// Lab value keys stored on a reference case. Absent labs stay absent and
// are mean-imputed at feature-extraction time, never zero-filled.
const (
	LabWBC        = "wbc"
	LabHemoglobin = "hgb"
	LabPlatelets  = "platelets"
	LabCRP        = "crp"
	LabCreatinine = "creatinine"
	LabGlucose    = "glucose"
)

// ReferenceCase is one historical case in the reference population. A case
// can carry several discharge diagnoses; the first entry is the primary one.
type ReferenceCase struct {
	ID        uuid.UUID
	AgeYears  float64
	Gender    string
	Symptoms  []string
	Diagnoses []string
	Vitals    vitals.Reading
	Labs      map[string]float64
}

// Query is the current patient, expressed in the same terms as the
// reference population.
type Query struct {
	Age    vitals.AgeGroup
	Gender string
	Vitals vitals.Reading
	Labs   map[string]float64
}

// SimilarCase is a retrieved neighbor with its similarity in (0, 1].
type SimilarCase struct {
	Case       *ReferenceCase
	Similarity float64
}
