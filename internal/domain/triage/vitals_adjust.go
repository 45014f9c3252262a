package triage

import (
	"github.com/triage/triage/internal/domain/vitals"
	"github.com/triage/triage/pkg/scoremap"
)

// vitalAdjustment is one multiplicative correction driven by a vital sign.
// General rows apply at every age; pediatric rows are additional and only
// fire for pediatric brackets.
type vitalAdjustment struct {
	pediatric bool
	applies   func(r vitals.Reading) bool
	diagnosis string
	factor    float64
}

func tempAtLeast(limit float64) func(vitals.Reading) bool {
	return func(r vitals.Reading) bool {
		t, ok := r.Temperature()
		return ok && t >= limit
	}
}

func spo2Below(limit int) func(vitals.Reading) bool {
	return func(r vitals.Reading) bool {
		s, ok := r.SpO2()
		return ok && s < limit
	}
}

func hrAbove(limit int) func(vitals.Reading) bool {
	return func(r vitals.Reading) bool {
		hr, ok := r.HeartRate()
		return ok && hr > limit
	}
}

var vitalAdjustments = []vitalAdjustment{
	{false, tempAtLeast(38.5), "Pneumonia", 1.2},
	{false, tempAtLeast(39.0), "Influenza", 1.2},
	{false, spo2Below(92), "Pulmonary Embolism", 1.3},
	{false, spo2Below(90), "Pneumonia", 1.2},
	{false, hrAbove(110), "Acute Myocardial Infarction", 1.3},
	{false, hrAbove(120), "Pulmonary Embolism", 1.4},

	{true, tempAtLeast(38.5), "Bronchiolitis", 1.3},
	{true, tempAtLeast(39.0), "Croup", 1.2},
	{true, tempAtLeast(39.0), "Acute Otitis Media", 1.3},
	{true, tempAtLeast(39.5), "Meningitis", 1.4},
	{true, spo2Below(94), "Bronchiolitis", 1.4},
	{true, spo2Below(93), "RSV Bronchiolitis", 1.4},
	{true, spo2Below(92), "Pediatric Pneumonia", 1.5},
	{true, hrAbove(120), "Croup", 1.2},
	{true, hrAbove(130), "RSV Bronchiolitis", 1.3},
	{true, hrAbove(140), "Meningitis", 1.5},
}

// adjustForVitals applies the general vital-sign corrections, plus the
// pediatric ones for pediatric brackets, caps the result at 100, and
// renormalizes. A diagnosis absent from the map is never introduced here.
func adjustForVitals(scores scoremap.Map, r vitals.Reading, age vitals.AgeGroup) scoremap.Map {
	out := scores.Clone()
	pediatric := age.Pediatric()
	for _, a := range vitalAdjustments {
		if a.pediatric && !pediatric {
			continue
		}
		if a.applies(r) {
			out.Boost(a.diagnosis, a.factor)
		}
	}
	out.Clamp(100)
	out.Normalize()
	return out
}
