// Package triage fuses the classifier baseline, clinical rules, vital
// signs, case similarity, and language-model advice into one ranked
// diagnosis list.
package triage

import (
	"github.com/triage/triage/internal/domain/vitals"
	"github.com/triage/triage/pkg/scoremap"
)

// Source tags describe which stages contributed to an outcome.
const (
	SourceMLOnly        = "ml-only"
	SourceMLRulesVitals = "ml+rules+vitals"
	SourceMLSimilarity  = "ml+similarity"
	SourceMLNarrative   = "ml+narrative"
	SourceFullHybrid    = "full-hybrid"
)

// Confidence tiers for the final ranking.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
)

// Request is one diagnosis request. Symptoms is the free-text
// comma-separated list; everything else is optional.
type Request struct {
	Symptoms       string
	Age            string
	Gender         string
	Vitals         string
	AdditionalInfo string
}

// Outcome is the fused diagnosis result.
type Outcome struct {
	Diagnoses     []scoremap.Entry
	Scores        scoremap.Map
	TopDiagnosis  string
	Confidence    string
	Treatment     string
	BillingCode   string
	Rationale     string
	Source        string
	AgeGroup      vitals.AgeGroup
	Vitals        vitals.Reading
	VitalWarnings []string
	Unmatched     []string
}
