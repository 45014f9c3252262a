package symptom

import "strings"

// MatchResult carries the resolved symptom ids and the input terms no
// dictionary entry covered. Unmatched terms keep their original casing and
// spacing so callers can echo them back verbatim.
type MatchResult struct {
	IDs       []string
	Unmatched []string
}

// Match splits input on commas and resolves each term against the
// dictionary. A term matches an entry when the entry's canonical name is a
// substring of the lower-cased term, or one of its synonyms is. The first
// matching entry wins; there is no ranking among candidates. Blank terms are
// dropped silently.
func (d *Dictionary) Match(input string) MatchResult {
	var res MatchResult
	for _, raw := range strings.Split(input, ",") {
		term := strings.ToLower(strings.TrimSpace(raw))
		if term == "" {
			continue
		}
		id, ok := d.resolve(term)
		if ok {
			res.IDs = append(res.IDs, id)
		} else {
			res.Unmatched = append(res.Unmatched, strings.TrimSpace(raw))
		}
	}
	return res
}

func (d *Dictionary) resolve(term string) (string, bool) {
	for _, e := range d.entries {
		if strings.Contains(term, strings.ToLower(e.Name)) {
			return e.ID, true
		}
		for _, syn := range e.Synonyms {
			if strings.Contains(term, strings.ToLower(syn)) {
				return e.ID, true
			}
		}
	}
	return "", false
}
