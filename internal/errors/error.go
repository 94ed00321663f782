// Package errors provides structured, coded errors for the blockdom engine.
//
// Every error carries a stable code (e.g., "B001") so precondition
// violations can be identified in tests and bug reports without string
// matching.
package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryRuntime    Category = "runtime"
	CategoryValidation Category = "validation"
	CategoryHost       Category = "host"
)

// Error is a structured engine error.
type Error struct {
	// Code is a unique error identifier (e.g., "B001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation with remediation hints.
	Detail string

	// Context is optional call-site context (node kind, key, ...).
	Context string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Context)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// New creates an Error from a registered code. Unregistered codes yield a
// generic runtime error carrying the code, never a panic.
func New(code string) *Error {
	tmpl, ok := registry[code]
	if !ok {
		return &Error{
			Code:     code,
			Category: CategoryRuntime,
			Message:  "unregistered error code",
		}
	}
	return &Error{
		Code:     code,
		Category: tmpl.Category,
		Message:  tmpl.Message,
		Detail:   tmpl.Detail,
	}
}

// Newf creates an Error from a registered code with formatted context.
func Newf(code, format string, args ...any) *Error {
	e := New(code)
	e.Context = fmt.Sprintf(format, args...)
	return e
}

// Is reports whether err is an engine Error with the given code.
func Is(err error, code string) bool {
	e, ok := err.(*Error)
	return ok && e.Code == code
}
