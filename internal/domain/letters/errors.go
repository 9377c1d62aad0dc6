package letters

import (
	"errors"
	"fmt"
)

// ErrEmptyText indicates the caller submitted blank input. This is the
// only pipeline failure surfaced to callers; generation-side failures
// degrade to a placeholder result instead.
var ErrEmptyText = errors.New("input text is empty")

// ErrServiceUnavailable indicates the generation service is not
// configured. Callers never see it; the orchestrator takes the
// heuristic path instead.
var ErrServiceUnavailable = errors.New("generation service unavailable")

// snippetLimit bounds the raw-output prefix kept on a malformed-output
// error so diagnostics never log an unbounded model response.
const snippetLimit = 200

// MalformedOutputError reports generation output in which no JSON
// object could be located or parsed. Snippet holds a truncated prefix
// of the raw output for diagnostics.
type MalformedOutputError struct {
	Snippet string
	Cause   error
}

func (e *MalformedOutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed generation output: %v (raw: %q)", e.Cause, e.Snippet)
	}
	return fmt.Sprintf("malformed generation output (raw: %q)", e.Snippet)
}

func (e *MalformedOutputError) Unwrap() error { return e.Cause }

func newMalformedOutputError(raw string, cause error) *MalformedOutputError {
	if len(raw) > snippetLimit {
		raw = raw[:snippetLimit]
	}
	return &MalformedOutputError{Snippet: raw, Cause: cause}
}
