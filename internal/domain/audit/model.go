// Package audit keeps an append-only trail of every diagnosis issued.
// Recording is fire and forget: a failed write is logged, never surfaced
// to the caller.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Record is one issued diagnosis.
type Record struct {
	ID           uuid.UUID          `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	Symptoms     []string           `json:"symptoms"`
	Age          string             `json:"age,omitempty"`
	Diagnoses    map[string]float64 `json:"diagnoses"`
	TopDiagnosis string             `json:"top_diagnosis"`
	Treatment    string             `json:"treatment,omitempty"`
	BillingCode  string             `json:"billing_code,omitempty"`
	Source       string             `json:"source"`
}
