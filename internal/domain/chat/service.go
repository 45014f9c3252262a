// Package chat exposes a conversational interface to the narrative
// advisor, keeping a bounded per-session history.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/triage/triage/internal/domain/narrative"
)

// maxExchanges bounds the stored history per session. Older exchanges
// fall off so prompts cannot grow without limit.
const maxExchanges = 10

// Exchange is one user turn and the assistant's reply.
type Exchange struct {
	User      string
	Assistant string
}

type session struct {
	mu      sync.Mutex
	history []Exchange
}

// Service answers chat messages with the case context of prior turns.
type Service struct {
	log     zerolog.Logger
	advisor *narrative.Advisor

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func NewService(log zerolog.Logger, advisor *narrative.Advisor) *Service {
	return &Service{
		log:      log.With().Str("component", "chat").Logger(),
		advisor:  advisor,
		sessions: map[uuid.UUID]*session{},
	}
}

// Reply answers one user message. A nil session id starts a new session;
// the (possibly new) id is returned with the reply.
func (s *Service) Reply(ctx context.Context, sessionID uuid.UUID, message string) (uuid.UUID, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return sessionID, "", fmt.Errorf("empty message")
	}
	if s.advisor == nil {
		return sessionID, "", narrative.ErrUnavailable
	}

	if sessionID == uuid.Nil {
		sessionID = uuid.New()
	}
	sess := s.session(sessionID)

	sess.mu.Lock()
	history := append([]Exchange(nil), sess.history...)
	sess.mu.Unlock()

	reply, provider, err := s.advisor.Complete(ctx, buildChatPrompt(history, message))
	if err != nil {
		return sessionID, "", fmt.Errorf("chat completion: %w", err)
	}
	s.log.Debug().Str("provider", provider).Str("session", sessionID.String()).Msg("chat reply generated")

	sess.mu.Lock()
	sess.history = append(sess.history, Exchange{User: message, Assistant: reply})
	if len(sess.history) > maxExchanges {
		sess.history = sess.history[len(sess.history)-maxExchanges:]
	}
	sess.mu.Unlock()

	return sessionID, reply, nil
}

// History returns a copy of the session's stored exchanges.
func (s *Service) History(sessionID uuid.UUID) []Exchange {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return append([]Exchange(nil), sess.history...)
}

func (s *Service) session(id uuid.UUID) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	return sess
}

func buildChatPrompt(history []Exchange, message string) string {
	var b strings.Builder
	b.WriteString("You are a medical triage assistant. Answer briefly and factually.\n")
	b.WriteString("Recommend seeing a physician for anything urgent; never prescribe.\n\n")
	for _, ex := range history {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", ex.User, ex.Assistant)
	}
	fmt.Fprintf(&b, "User: %s\nAssistant:", message)
	return b.String()
}
