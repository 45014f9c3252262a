package narrative

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

const defaultCallTimeout = 30 * time.Second

// Advisor calls the configured model providers in order, falling back at
// most once when the primary fails or returns unparsable output.
type Advisor struct {
	log     zerolog.Logger
	models  []Model
	timeout time.Duration
}

func NewAdvisor(log zerolog.Logger, timeout time.Duration, models ...Model) *Advisor {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &Advisor{
		log:     log.With().Str("component", "narrative").Logger(),
		models:  models,
		timeout: timeout,
	}
}

// Available reports whether at least one provider is configured.
func (a *Advisor) Available() bool { return len(a.models) > 0 }

// Advise asks for structured advice on a case. The returned Result is
// tagged; callers check OK() instead of an error return because the
// pipeline consumes failures as data, not as aborts.
func (a *Advisor) Advise(ctx context.Context, in Input) Result {
	if !a.Available() {
		return Result{Err: ErrUnavailable}
	}

	prompt := BuildPrompt(in)
	var lastErr error

	// primary plus at most one fallback
	attempts := a.models
	if len(attempts) > 2 {
		attempts = attempts[:2]
	}
	for _, m := range attempts {
		adv, err := a.call(ctx, m, prompt)
		if err != nil {
			a.log.Warn().Err(err).Str("provider", m.Name()).Msg("advisory call failed")
			lastErr = err
			continue
		}
		return Result{Advice: adv, Provider: m.Name()}
	}
	return Result{Err: fmt.Errorf("%w: %w", ErrUnavailable, lastErr)}
}

// Complete runs a free-form prompt against the providers with the same
// timeout and fallback policy. Used by the conversational endpoint.
func (a *Advisor) Complete(ctx context.Context, prompt string) (string, string, error) {
	if !a.Available() {
		return "", "", ErrUnavailable
	}
	var lastErr error
	attempts := a.models
	if len(attempts) > 2 {
		attempts = attempts[:2]
	}
	for _, m := range attempts {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		out, err := m.Generate(callCtx, prompt)
		cancel()
		if err != nil {
			a.log.Warn().Err(err).Str("provider", m.Name()).Msg("completion failed")
			lastErr = err
			continue
		}
		return out, m.Name(), nil
	}
	return "", "", fmt.Errorf("%w: %w", ErrUnavailable, lastErr)
}

func (a *Advisor) call(ctx context.Context, m Model, prompt string) (*Advice, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := m.Generate(callCtx, prompt)
	if err != nil {
		return nil, err
	}
	adv, err := ParseAdvice(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Name(), err)
	}
	return adv, nil
}
