package triage

import (
	"strings"

	"github.com/triage/triage/internal/domain/narrative"
	"github.com/triage/triage/pkg/scoremap"
)

// Narrative merge tuning. The blend weight grows with the model's own
// probability estimate, so confident suggestions pull harder.
const (
	narrativeBaseWeight  = 0.4
	narrativeProbWeight  = 0.3
	narrativeNovelFactor = 0.7
	narrativeNovelCap    = 40.0
)

// mergeNarrative blends structured model advice into the scores.
// Suggestions matching an existing diagnosis are blended by weight; novel
// ones enter with a discounted score.
func mergeNarrative(scores scoremap.Map, adv *narrative.Advice) scoremap.Map {
	out := scores.Clone()
	for name, pct := range adv.Diagnoses {
		w := narrativeBaseWeight + narrativeProbWeight*(pct/100)
		if key, ok := out.ResolveAlias(name); ok {
			out[key] = (1-w)*out[key] + w*pct
			continue
		}
		score := pct * narrativeNovelFactor
		if score > narrativeNovelCap {
			score = narrativeNovelCap
		}
		out[name] = score
	}
	out.Normalize()
	return out
}

// Pediatric gate: coronary diagnoses are not plausible in children.
const pediatricCoronaryDamp = 0.05

var pediatricGatedDiagnoses = []string{
	"Myocardial Infarction", "Acute Myocardial Infarction", "Angina Pectoris",
}

func applyAgeGate(scores scoremap.Map, pediatric bool) {
	if !pediatric {
		return
	}
	for _, d := range pediatricGatedDiagnoses {
		scores.Boost(d, pediatricCoronaryDamp)
	}
}

// criticalPattern is a three-symptom presentation that must not be missed.
type criticalPattern struct {
	symptoms  [3]string
	diagnosis string
	factor    float64
}

var criticalPatterns = []criticalPattern{
	{[3]string{"chest pain", "sweating", "nausea"}, "Acute Myocardial Infarction", 3.0},
	{[3]string{"fever", "cough", "shortness of breath"}, "Pneumonia", 2.5},
	{[3]string{"headache", "fever", "vomiting"}, "Meningitis", 2.7},
	{[3]string{"abdominal pain", "vomiting", "loss of appetite"}, "Appendicitis", 2.2},
	{[3]string{"shortness of breath", "cough", "orthopnea"}, "Heart Failure", 2.3},
}

const (
	criticalBoostCeiling = 95.0
	criticalForceTopOver = 50.0
)

// boostCriticalPatterns amplifies a diagnosis when its full symptom triad
// is present. A boosted score above the force-top threshold is promoted
// past the current leader: missing these presentations is the one error
// the ranking must not make.
func boostCriticalPatterns(scores scoremap.Map, text string) {
	for _, p := range criticalPatterns {
		if !strings.Contains(text, p.symptoms[0]) ||
			!strings.Contains(text, p.symptoms[1]) ||
			!strings.Contains(text, p.symptoms[2]) {
			continue
		}
		cur, ok := scores[p.diagnosis]
		if !ok {
			continue
		}
		boosted := cur * p.factor
		if boosted > criticalBoostCeiling {
			boosted = criticalBoostCeiling
		}
		if boosted > criticalForceTopOver {
			if top, topScore, ok := scores.Top(); ok && top != p.diagnosis && boosted <= topScore {
				boosted = topScore + 1
			}
		}
		scores[p.diagnosis] = boosted
	}
}
