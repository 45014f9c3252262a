package scoremap

import "strings"

const (
	aliasThreshold      = 0.3
	substringAliasBonus = 0.3
)

// ResolveAlias finds the existing key that best matches name, tolerating
// spelling variants between sources (word overlap plus a substring bonus).
// It returns the matched key, or false when nothing clears the threshold.
func (m Map) ResolveAlias(name string) (string, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	if target == "" {
		return "", false
	}

	best, bestScore := "", 0.0
	for key := range m {
		score := nameSimilarity(target, strings.ToLower(key))
		if score > bestScore || (score == bestScore && best != "" && key < best) {
			best, bestScore = key, score
		}
	}
	if bestScore > aliasThreshold {
		return best, true
	}
	return "", false
}

// nameSimilarity is the Jaccard overlap of the two names' word sets, with
// a flat bonus when one name contains the other whole.
func nameSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	wordsA := fieldSet(a)
	wordsB := fieldSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	inter := 0
	for w := range wordsA {
		if wordsB[w] {
			inter++
		}
	}
	union := len(wordsA) + len(wordsB) - inter
	score := float64(inter) / float64(union)

	if strings.Contains(a, b) || strings.Contains(b, a) {
		score += substringAliasBonus
	}
	if score > 1 {
		score = 1
	}
	return score
}

func fieldSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
