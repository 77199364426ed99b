package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig  = "CONFIG"
	ErrCollect = "COLLECT"
	ErrPlugin  = "PLUGIN"
	ErrExec    = "EXEC"
	ErrInput   = "INPUT"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// The multi-line form is what the CLI prints:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
//
// Inside the dashboard only a single line fits, so panes and the footer use Summary.
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrCollect code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrCollect,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// Error implements the error interface with the multi-line CLI layout.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Summary renders the error on one line: "message: cause (suggestion)".
func (e *Error) Summary() string {
	s := e.Message
	if e.Cause != nil {
		s += ": " + Summary(e.Cause)
	}
	if e.Suggestion != "" {
		s += " (" + e.Suggestion + ")"
	}
	return s
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var ddErr *Error
	if errors.As(err, &ddErr) {
		return ddErr.Code == code
	}
	return false
}

// Summary returns a single-line description of any error. Structured errors
// use their Summary method; everything else has its newlines collapsed.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var ddErr *Error
	if errors.As(err, &ddErr) && ddErr == err {
		return ddErr.Summary()
	}
	return strings.Join(strings.Fields(err.Error()), " ")
}
