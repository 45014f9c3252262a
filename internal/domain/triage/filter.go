package triage

import (
	"strings"

	"github.com/triage/triage/internal/domain/vitals"
	"github.com/triage/triage/pkg/scoremap"
)

// Plausibility filter tuning.
const (
	implausibleDamping   = 0.01
	infarctPatternBoost  = 2.5
	strokePatternBoost   = 3.0
	redFlagBoost         = 5.0
	feverishInfarctDamp  = 0.1
	feverishInfectBoost  = 2.0
	urologicalBoost      = 3.0
	urologicalDamping    = 0.02
	filterFloor          = 1.0
	filterVisibility     = 2.0
	maxRankedDiagnoses   = 8
	tachycardiaThreshold = 100
	feverThreshold       = 38.5
)

// adultOnlyDiagnoses are damped to noise level for pediatric patients.
var adultOnlyDiagnoses = []string{
	"Angina Pectoris", "Myocardial Infarction", "Acute Myocardial Infarction",
	"Cardiomyopathy", "Menopausal Syndrome", "Psoriasis", "Heart Failure",
	"Facial Palsy", "COPD Exacerbation", "Deep Vein Thrombosis",
	"Pulmonary Embolism", "Coronary Artery Disease",
}

// childOnlyDiagnoses are damped to noise level for adult patients.
var childOnlyDiagnoses = []string{
	"RSV Bronchiolitis", "Croup", "Bronchiolitis", "Epiglottitis",
	"Infant Cough", "Infantile Colic", "Diaper Dermatitis",
}

// redFlags map an alarm phrase to the diagnoses it makes urgent.
var redFlags = map[string][]string{
	"worst headache":     {"Subarachnoid Hemorrhage", "Meningitis"},
	"thunderclap":        {"Subarachnoid Hemorrhage", "Meningitis"},
	"tearing chest pain": {"Aortic Dissection", "Acute Myocardial Infarction"},
	"respiratory arrest": {"Respiratory Failure"},
	"cardiac arrest":     {"Respiratory Failure"},
	"sudden unconscious": {"Syncope", "Status Epilepticus", "Intracranial Hemorrhage"},
}

var pediatricInfectionMarkers = []string{"Pneumonia", "Bronchiolitis", "Viral Infection", "Bronchitis"}

var urologicalDiagnoses = []string{"Urinary Tract Infection", "Cystitis", "Pyelonephritis"}

// filterImplausible damps diagnoses that do not fit the patient, boosts
// established symptom constellations and red flags, then cuts the map
// down to the visible top candidates.
func filterImplausible(scores scoremap.Map, text string, r vitals.Reading, age vitals.AgeGroup) scoremap.Map {
	out := scores.Clone()

	if age.Pediatric() {
		for _, d := range adultOnlyDiagnoses {
			out.Boost(d, implausibleDamping)
		}
	} else {
		for _, d := range childOnlyDiagnoses {
			out.Boost(d, implausibleDamping)
		}
	}

	chestPain := strings.Contains(text, "chest pain")
	dyspnea := strings.Contains(text, "shortness of breath") || strings.Contains(text, "dyspnea")
	if chestPain && dyspnea {
		boostMatching(out, infarctPatternBoost, "Myocardial Infarction")
	}
	if (strings.Contains(text, "paralysis") || strings.Contains(text, "weakness")) &&
		strings.Contains(text, "speech") {
		boostMatching(out, strokePatternBoost, "Stroke")
	}

	for phrase, diagnoses := range redFlags {
		if !strings.Contains(text, phrase) {
			continue
		}
		for _, d := range diagnoses {
			out.Boost(d, redFlagBoost)
		}
	}

	t, hasTemp := r.Temperature()
	hr, hasHR := r.HeartRate()
	if hasTemp && hasHR && t > feverThreshold {
		if hr < tachycardiaThreshold {
			// fever without tachycardia argues against an acute infarct
			boostMatching(out, feverishInfarctDamp, "Infarction")
		} else if age.Pediatric() {
			boostMatching(out, feverishInfectBoost, pediatricInfectionMarkers...)
		}
	}

	if strings.Contains(text, "dysuria") ||
		(strings.Contains(text, "burning") && strings.Contains(text, "urinat")) {
		for _, d := range urologicalDiagnoses {
			out.Boost(d, urologicalBoost)
		}
		boostMatching(out, urologicalDamping, "Cardiac", "Heart", "Infarction")
	}

	out.FloorDropRenorm(filterFloor, filterVisibility)
	out.Truncate(maxRankedDiagnoses)
	return out
}

// boostMatching multiplies every diagnosis whose name contains one of the
// markers (case insensitive).
func boostMatching(m scoremap.Map, factor float64, markers ...string) {
	for name := range m {
		lower := strings.ToLower(name)
		for _, marker := range markers {
			if strings.Contains(lower, strings.ToLower(marker)) {
				m[name] *= factor
				break
			}
		}
	}
}
