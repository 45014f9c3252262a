// Package rules implements the hand-authored clinical rule layer: leading
// symptom tables, age-branch rules, comorbidity rules, lab thresholds, and
// symptom-constellation boosts. Rules run in a fixed order because later
// stages read floors set by earlier ones.
package rules

import (
	"regexp"
	"strings"
)

// Context holds the labeled sections parsed out of the free-text
// "additional info" field. A missing label simply contributes nothing.
type Context struct {
	Preconditions []string          // pre-existing conditions, lower-cased
	Findings      map[string]string // exam area -> finding text, lower-cased
	Labs          map[string]string // lab name -> raw value text, lower-cased
	Gender        string
}

var sectionPatterns = map[string]*regexp.Regexp{
	// Both English labels and the original German form labels are accepted.
	"preconditions": regexp.MustCompile(`(?i)(?:preconditions|pre-existing conditions|vorerkrankungen):\s*(.*?)(?:\n|$)`),
	"findings":      regexp.MustCompile(`(?i)(?:findings|examination results|untersuchungsergebnisse):\s*(.*?)(?:\n|$)`),
	"labs":          regexp.MustCompile(`(?i)(?:labs|lab values|laborwerte):\s*(.*?)(?:\n|$)`),
	"gender":        regexp.MustCompile(`(?i)(?:gender|geschlecht):\s*(.*?)(?:\n|$)`),
}

// ParseContext scans additional info for labeled sections using the
// `label:` prefix + comma-separated-items grammar.
func ParseContext(info string) Context {
	ctx := Context{
		Findings: map[string]string{},
		Labs:     map[string]string{},
	}
	if strings.TrimSpace(info) == "" {
		return ctx
	}

	if m := sectionPatterns["preconditions"].FindStringSubmatch(info); m != nil {
		for _, item := range strings.Split(m[1], ",") {
			if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
				ctx.Preconditions = append(ctx.Preconditions, item)
			}
		}
	}
	if m := sectionPatterns["findings"].FindStringSubmatch(info); m != nil {
		parseKeyedItems(m[1], ctx.Findings)
	}
	if m := sectionPatterns["labs"].FindStringSubmatch(info); m != nil {
		parseKeyedItems(m[1], ctx.Labs)
	}
	if m := sectionPatterns["gender"].FindStringSubmatch(info); m != nil {
		ctx.Gender = strings.ToLower(strings.TrimSpace(m[1]))
	}
	return ctx
}

func parseKeyedItems(s string, into map[string]string) {
	for _, item := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(item, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		into[key] = strings.ToLower(strings.TrimSpace(value))
	}
}

// LabNumber returns the first named lab parsed as a number.
func (c Context) LabNumber(names ...string) (float64, bool) {
	return labValue(c.Labs, names...)
}

// HasPrecondition reports whether any of the given condition names appears
// in the parsed precondition list.
func (c Context) HasPrecondition(names ...string) bool {
	for _, p := range c.Preconditions {
		for _, n := range names {
			if p == n || strings.Contains(p, n) {
				return true
			}
		}
	}
	return false
}
