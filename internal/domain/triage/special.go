package triage

import (
	"strings"

	"github.com/triage/triage/pkg/scoremap"
)

// specialOutcome is a recognized presentation with a fixed differential.
// When one matches, the generic merge stages are skipped entirely.
type specialOutcome struct {
	scores      scoremap.Map
	billingCode string
}

const (
	strokeFloor       = 85.0
	strokeBoost       = 3.0
	strokeOthersDamp  = 0.3
	strokeBillingCode = "I63.9"
)

var allergySkinTerms = []string{"rash", "hives", "itch", "urticaria"}
var allergyFoodTerms = []string{"nut", "peanut", "seafood", "shellfish", "egg", "milk", "food"}
var dysuriaTerms = []string{"dysuria", "burning urination", "urinary frequency", "painful urination"}

// detectSpecialCase checks the symptom text against the hard-wired
// presentations: allergic reactions, uncomplicated urinary infections,
// and the stroke constellation. The stroke case reshapes the incoming
// scores; the other two replace them with a fixed distribution.
func detectSpecialCase(text string, scores scoremap.Map) (*specialOutcome, bool) {
	if out, ok := detectAllergy(text); ok {
		return out, true
	}
	if out, ok := detectUrinary(text); ok {
		return out, true
	}
	return detectStroke(text, scores)
}

func detectAllergy(text string) (*specialOutcome, bool) {
	if !containsAny(text, allergySkinTerms) {
		return nil, false
	}
	dyspnea := strings.Contains(text, "shortness of breath") || strings.Contains(text, "dyspnea")
	if !dyspnea && !containsAny(text, allergyFoodTerms) {
		return nil, false
	}

	// airway involvement makes this anaphylaxis until proven otherwise
	if dyspnea || strings.Contains(text, "swelling") {
		return &specialOutcome{
			scores: scoremap.Map{
				"Anaphylactic Reaction": 45,
				"Food Allergy":          35,
				"Urticaria":             15,
				"Angioedema":            5,
			},
			billingCode: "T78.2",
		}, true
	}
	return &specialOutcome{
		scores: scoremap.Map{
			"Urticaria":         40,
			"Food Allergy":      35,
			"Allergic Reaction": 20,
			"Angioedema":        5,
		},
		billingCode: "L50.0",
	}, true
}

func detectUrinary(text string) (*specialOutcome, bool) {
	if !containsAny(text, dysuriaTerms) {
		return nil, false
	}
	// chest or breathing complaints point away from an isolated UTI
	if strings.Contains(text, "chest pain") || strings.Contains(text, "shortness of breath") {
		return nil, false
	}

	if strings.Contains(text, "fever") && strings.Contains(text, "flank") {
		return &specialOutcome{
			scores: scoremap.Map{
				"Pyelonephritis":          60,
				"Urinary Tract Infection": 25,
				"Cystitis":                15,
			},
			billingCode: "N10",
		}, true
	}
	return &specialOutcome{
		scores: scoremap.Map{
			"Urinary Tract Infection": 60,
			"Cystitis":                35,
			"Urethritis":              5,
		},
		billingCode: "N30.0",
	}, true
}

func detectStroke(text string, scores scoremap.Map) (*specialOutcome, bool) {
	if !strings.Contains(text, "paralysis") || !strings.Contains(text, "speech") {
		return nil, false
	}

	out := scores.Clone()
	for name := range out {
		if strings.Contains(strings.ToLower(name), "stroke") {
			continue
		}
		out[name] *= strokeOthersDamp
	}
	boosted := out["Stroke"] * strokeBoost
	if boosted < strokeFloor {
		boosted = strokeFloor
	}
	out["Stroke"] = boosted
	out.Normalize()

	return &specialOutcome{scores: out, billingCode: strokeBillingCode}, true
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
