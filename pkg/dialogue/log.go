package dialogue

import (
	"errors"
	"sync"
)

// ErrInvalidTurn is returned when a turn is missing its role or content.
var ErrInvalidTurn = errors.New("dialogue: turn requires a role and content")

// Log is an append-only record of conversation turns. It is the single
// source of truth for the context sent to the backend on every request:
// turns are never edited, truncated or reordered once appended.
//
// A Log is safe for concurrent use. Each session owns exactly one Log and
// it lives only as long as the process.
type Log struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewLog creates an empty conversation log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a turn to the end of the log. The only validation is that
// both role and content are non-empty; content is otherwise opaque.
func (l *Log) Append(t Turn) error {
	if t.Role == "" || t.Content == "" {
		return ErrInvalidTurn
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, t)
	return nil
}

// Snapshot returns a copy of the full ordered turn sequence. It is always
// the complete history, never a window, so the caller can hand it directly
// to the wire layer.
func (l *Log) Snapshot() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Len returns the number of turns in the log.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}
