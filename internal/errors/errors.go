// Package errors provides domain-specific error types for dumpsock.
//
// Every pipeline stage that can fail has a sentinel kind.  A StageError
// pairs that kind with the address involved and the underlying cause so
// that callers can match on either with [errors.Is].
package errors

import (
	"errors"
	"fmt"
)

// ── Stage kinds ──────────────────────────────────────────────────────

var (
	ErrTransportInit = errors.New("transport init failed")
	ErrSocketCreate  = errors.New("couldn't create a tcp socket")
	ErrBind          = errors.New("socket bind error")
	ErrListen        = errors.New("socket listen error")
	ErrAccept        = errors.New("socket accept error")
	ErrRead          = errors.New("socket error during read")
	ErrWrite         = errors.New("output write error")
)

// ── Structured error types ───────────────────────────────────────────

// StageError is the terminal error of a run: the stage that failed, the
// local or peer address it was working on, and the underlying cause.
type StageError struct {
	Kind error  // one of the Err* stage kinds above
	Addr string // address involved (empty when there is none)
	Err  error  // underlying error, may be nil
}

func (e *StageError) Error() string {
	s := e.Kind.Error()
	if e.Addr != "" {
		s += ": " + e.Addr
	}
	if e.Err != nil {
		s += fmt.Sprintf(": %v", e.Err)
	}
	return s
}

// Unwrap exposes both the stage kind and the cause.
func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Stage creates a StageError of the given kind.
func Stage(kind error, addr string, err error) *StageError {
	return &StageError{Kind: kind, Addr: addr, Err: err}
}

// KindOf returns the stage kind carried by err, or nil if err is not a
// StageError.
func KindOf(err error) error {
	var se *StageError
	if errors.As(err, &se) {
		return se.Kind
	}
	return nil
}
