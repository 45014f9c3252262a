// Package narrative asks a language model for a free-text second opinion
// on a case and parses its answer back into structured advice. The
// pipeline treats this stage as best effort: a failure here degrades the
// result, it never fails the diagnosis.
package narrative

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no language model provider is
// configured or every configured provider failed.
var ErrUnavailable = errors.New("narrative advisor unavailable")

// Advice is the structured form of a model response.
type Advice struct {
	// Diagnoses maps suggested diagnosis names to the model's probability
	// estimate in percent.
	Diagnoses   map[string]float64
	Confidence  string
	Rationale   string
	Treatment   string
	BillingCode string
}

// Result is the tagged outcome of an advisory call. Exactly one of
// Advice and Err is set; Provider names the model that answered.
type Result struct {
	Advice   *Advice
	Provider string
	Err      error
}

func (r Result) OK() bool { return r.Err == nil && r.Advice != nil }

// Model is one language model provider.
type Model interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}
