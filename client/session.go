// Package client implements the conversational client for the public
// information search service: an append-only dialogue log, a single-request
// dispatcher, and the HTTP transport behind it.
package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pubfindco/pubfind/pkg/dialogue"
	"github.com/pubfindco/pubfind/pkg/search"
)

// State is the dispatcher's position in its request cycle.
type State int

const (
	// StateIdle means no request is outstanding and submissions are accepted.
	StateIdle State = iota
	// StateAwaitingResponse means one request is in flight. Further
	// submissions are rejected, not queued.
	StateAwaitingResponse
)

// Session owns one conversation with the search service. It pairs a dialogue
// log with an explicit two-state machine so that "at most one outstanding
// request" is a structural property rather than a side effect of a disabled
// button somewhere in the UI.
type Session struct {
	id        string
	log       *dialogue.Log
	transport Transport
	logger    *zap.Logger

	mu    sync.Mutex
	state State
}

// NewSession creates a session with an empty dialogue log. The transport is
// injected so tests can run against a fake service.
func NewSession(transport Transport, logger *zap.Logger) *Session {
	return &Session{
		id:        uuid.NewString(),
		log:       dialogue.NewLog(),
		transport: transport,
		logger:    logger,
	}
}

// ID returns the session's identifier, used only for log correlation.
func (s *Session) ID() string { return s.id }

// History returns the full ordered dialogue so far.
func (s *Session) History() []dialogue.Turn { return s.log.Snapshot() }

// Busy reports whether a request is currently in flight.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateAwaitingResponse
}

// Submit runs one round-trip: send the trimmed query together with the
// history accumulated so far, and on success grow the log by exactly two
// turns, user then assistant.
//
// A query that is empty after trimming returns ErrEmptyQuery and changes
// nothing. A submission while another request is outstanding returns ErrBusy
// and sends nothing. On any transport or decode failure the log is left
// exactly as it was before the submission - a turn is only ever recorded for
// a round-trip that really completed - and the error is returned for the
// caller to map to FallbackMessage. The session always returns to StateIdle,
// whatever the exit path. Retries are never automatic; since a failed query
// leaves no turn behind, resubmitting re-sends it with identical context.
func (s *Session) Submit(ctx context.Context, rawQuery string) (*search.Response, error) {
	query := strings.TrimSpace(rawQuery)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.settle()

	// The snapshot is the full context accumulated so far. The current
	// query rides in the query field and, by construction, the history can
	// never include the reply being fetched.
	req := &search.ChatRequest{
		Query:               query,
		ConversationHistory: s.log.Snapshot(),
	}

	resp, err := s.transport.Chat(ctx, req)
	if err != nil {
		s.logger.Warn("chat request failed",
			zap.String("session_id", s.id),
			zap.Error(err),
		)
		return nil, err
	}

	// The log never shrinks, so the round-trip lands atomically: both
	// turns, or neither.
	if err := s.log.Append(dialogue.Turn{Role: dialogue.RoleUser, Content: query}); err != nil {
		return nil, fmt.Errorf("append user turn: %w", err)
	}
	if err := s.log.Append(dialogue.Turn{Role: dialogue.RoleAssistant, Content: resp.Response}); err != nil {
		return nil, fmt.Errorf("append assistant turn: %w", err)
	}

	s.logger.Debug("chat round-trip complete",
		zap.String("session_id", s.id),
		zap.String("action", resp.Action),
		zap.Int("result_count", len(resp.Results)),
		zap.Bool("needs_disambiguation", resp.NeedsDisambiguation),
	)

	return resp, nil
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrBusy
	}
	s.state = StateAwaitingResponse
	return nil
}

func (s *Session) settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
}
