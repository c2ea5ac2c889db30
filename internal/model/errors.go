package model

import (
	"fmt"

	"github.com/taskwarden/warden/internal/exitcode"
)

// Kind groups errors into the taxonomy from spec.md §7. It is a
// classification, not a type name — every *CoreError carries one.
type Kind string

const (
	KindInput     Kind = "input"
	KindInvariant Kind = "invariant"
	KindState     Kind = "state"
	KindResource  Kind = "resource"
	KindDependency Kind = "dependency"
	KindProtocol  Kind = "protocol"
)

// CoreError is the single error type mutators and read paths return.
// It carries enough structure for the CLI's output envelope
// ({code, message, exitCode, recoverable, suggestion?, context?}) without
// the core ever constructing that envelope itself.
type CoreError struct {
	Kind       Kind
	Code       string
	ExitCode   int
	Message    string
	Suggestion string
	Context    map[string]any
	Recoverable bool
	Wrapped    error
}

func (e *CoreError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func (e *CoreError) Unwrap() error { return e.Wrapped }

// WithContext attaches structured context, returning the same error for chaining.
func (e *CoreError) WithContext(key string, value any) *CoreError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func newErr(kind Kind, code string, exit int, recoverable bool, format string, args ...any) *CoreError {
	return &CoreError{
		Kind:        kind,
		Code:        code,
		ExitCode:    exit,
		Message:     fmt.Sprintf(format, args...),
		Recoverable: recoverable,
	}
}

// Input errors: invalid arguments, enum values, id format, unknown entities.
func ErrInput(code, format string, args ...any) *CoreError {
	return newErr(KindInput, code, exitcode.InvalidInput, true, format, args...)
}

// ErrNotFound is raised for unknown task/phase/session ids.
func ErrNotFound(code, format string, args ...any) *CoreError {
	return newErr(KindInput, code, exitcode.NotFound, true, format, args...)
}

// Invariant errors: would violate a spec.md §3 invariant.
func ErrInvariant(code string, exit int, format string, args ...any) *CoreError {
	return newErr(KindInvariant, code, exit, true, format, args...)
}

// State errors: required precondition unmet (status transition, session scope).
func ErrState(code string, exit int, format string, args ...any) *CoreError {
	return newErr(KindState, code, exit, true, format, args...)
}

// Resource errors: lock timeout, I/O failure, checksum mismatch.
func ErrResource(code string, exit int, recoverable bool, format string, args ...any) *CoreError {
	return newErr(KindResource, code, exit, recoverable, format, args...)
}

// ErrDependency surfaces an absent external collaborator (e.g. JSON tool).
func ErrDependency(format string, args ...any) *CoreError {
	return newErr(KindDependency, "missing_dependency", exitcode.MissingDependency, false, format, args...)
}

// ErrProtocol is used for verification-gate and lifecycle-gate violations.
func ErrProtocol(code string, exit int, format string, args ...any) *CoreError {
	return newErr(KindProtocol, code, exit, true, format, args...)
}
