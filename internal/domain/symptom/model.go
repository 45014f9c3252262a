// Package symptom resolves free-text symptom phrases against the symptom
// dictionary (canonical names plus synonyms).
package symptom

import "errors"

// ErrNoSymptomsRecognized is the only request-fatal error in the pipeline:
// nothing in the input resolved to a known symptom, so scoring cannot run.
var ErrNoSymptomsRecognized = errors.New("no valid symptoms recognized")

// UnrecognizedError reports which input terms failed to resolve. It unwraps
// to ErrNoSymptomsRecognized so callers can keep matching on the sentinel.
type UnrecognizedError struct {
	Terms []string
}

func (e *UnrecognizedError) Error() string { return ErrNoSymptomsRecognized.Error() }

func (e *UnrecognizedError) Unwrap() error { return ErrNoSymptomsRecognized }

// Entry is one dictionary symptom: a stable id, the canonical name used by
// the classifier vocabulary, and the synonyms accepted on input. Entries are
// loaded once at startup and immutable afterwards.
type Entry struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// Dictionary is the ordered reference set. Order matters for matching:
// more specific entries (e.g. "barking cough") precede the general ones
// they contain (e.g. "cough"), and the first match wins.
type Dictionary struct {
	entries []Entry
	byID    map[string]*Entry
}

// NewDictionary builds a dictionary from entries, preserving their order.
func NewDictionary(entries []Entry) *Dictionary {
	d := &Dictionary{entries: entries, byID: make(map[string]*Entry, len(entries))}
	for i := range d.entries {
		d.byID[d.entries[i].ID] = &d.entries[i]
	}
	return d
}

// Name returns the canonical name for a symptom id.
func (d *Dictionary) Name(id string) (string, bool) {
	e, ok := d.byID[id]
	if !ok {
		return "", false
	}
	return e.Name, true
}

// Names resolves a list of ids to canonical names, skipping unknown ids.
func (d *Dictionary) Names(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := d.Name(id); ok {
			out = append(out, name)
		}
	}
	return out
}

// Suggestions returns all canonical names and synonyms, deduplicated, for
// input autocompletion.
func (d *Dictionary) Suggestions() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range d.entries {
		for _, s := range append([]string{e.Name}, e.Synonyms...) {
			if _, dup := seen[s]; dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of dictionary entries.
func (d *Dictionary) Len() int { return len(d.entries) }
