package similarity

import (
	"sort"

	"github.com/triage/triage/pkg/scoremap"
)

// Tuning constants for folding neighbor outcomes into the score map.
const (
	maxAdjusted        = 3
	repeatWeightFactor = 2.5
	repeatCountFactor  = 0.5
	singleWeightFactor = 2.0
	exactMatchBonus    = 0.5
	dominantMassShare  = 0.5
	dominantBoost      = 1.8
	newDiagnosisWeight = 1.5
	newDiagnosisScale  = 10.0
	newDiagnosisCap    = 25.0
)

// AdjustScores boosts diagnoses that keep appearing among the retrieved
// neighbors. Every diagnosis on a neighbor contributes its similarity, but
// only the three heaviest by aggregate weight are folded in. Diagnoses are
// matched into the score map by fuzzy alias; one with enough aggregate
// weight and no counterpart is inserted as a new low-scored candidate. The
// result is renormalized.
func AdjustScores(scores scoremap.Map, neighbors []SimilarCase) scoremap.Map {
	out := scores.Clone()
	if len(neighbors) == 0 {
		return out
	}

	total := 0.0
	for _, n := range neighbors {
		total += n.Similarity
	}
	if total <= 0 {
		return out
	}

	type tally struct {
		name      string
		rawWeight float64
		count     int
	}
	byDiagnosis := map[string]*tally{}
	primaryWeight := map[string]float64{}
	for _, n := range neighbors {
		for _, d := range n.Case.Diagnoses {
			t := byDiagnosis[d]
			if t == nil {
				t = &tally{name: d}
				byDiagnosis[d] = t
			}
			t.rawWeight += n.Similarity
			t.count++
		}
		if len(n.Case.Diagnoses) > 0 {
			primaryWeight[n.Case.Diagnoses[0]] += n.Similarity
		}
	}

	// The dominant-case boost looks only at primary diagnoses.
	dominant, dominantWeight := "", 0.0
	for name, w := range primaryWeight {
		if w > dominantWeight || (w == dominantWeight && name < dominant) {
			dominant, dominantWeight = name, w
		}
	}

	tallies := make([]*tally, 0, len(byDiagnosis))
	for _, t := range byDiagnosis {
		tallies = append(tallies, t)
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].rawWeight != tallies[j].rawWeight {
			return tallies[i].rawWeight > tallies[j].rawWeight
		}
		return tallies[i].name < tallies[j].name
	})
	if len(tallies) > maxAdjusted {
		tallies = tallies[:maxAdjusted]
	}

	for _, t := range tallies {
		weight := t.rawWeight / total

		key, ok := out.ResolveAlias(t.name)
		if !ok {
			if t.rawWeight > newDiagnosisWeight {
				score := t.rawWeight * newDiagnosisScale
				if score > newDiagnosisCap {
					score = newDiagnosisCap
				}
				out[t.name] = score
			}
			continue
		}

		factor := 1.0
		if t.count > 1 {
			factor += weight*repeatWeightFactor + float64(t.count)*repeatCountFactor
		} else {
			factor += weight * singleWeightFactor
		}
		if key == t.name {
			factor += exactMatchBonus
		}
		if t.name == dominant && dominantWeight > dominantMassShare*total {
			factor *= dominantBoost
		}
		out[key] *= factor
	}

	out.Normalize()
	return out
}
