package client

import "errors"

// ErrEmptyQuery is returned when a query is empty after trimming whitespace.
// It is a defined no-op, not a fault: nothing was appended, nothing was sent,
// and callers should not surface it to the user.
var ErrEmptyQuery = errors.New("client: empty query")

// ErrBusy is returned when a submission arrives while a request is already
// in flight. Submissions are not queued; the caller may retry once the
// outstanding request settles.
var ErrBusy = errors.New("client: request already in flight")

// FallbackMessage is the fixed text shown in place of an assistant reply
// when a request fails. The failed call leaves no trace in the dialogue log.
const FallbackMessage = "Sorry, I encountered an error processing your request. Please try again."

// TransportError indicates the request could not be completed or the server
// returned a non-success status. All non-2xx statuses are treated uniformly.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "transport: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError indicates the response body could not be parsed into the
// documented shape. Malformed payloads are never partially trusted.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }
