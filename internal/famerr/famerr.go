// Package famerr implements the error taxonomy from the FamDB design:
// UserError, DataError, IOError and Warning, each mapping to a stable
// CLI exit code.
package famerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the error taxonomy used at the CLI boundary.
type Kind int

const (
	// KindUser covers ambiguous terms, unknown accessions, unknown
	// formats and contradictory flags.
	KindUser Kind = iota
	// KindData covers corrupt files, schema mismatches, inconsistent
	// file sets and unknown referenced taxa.
	KindData
	// KindIO covers container/adapter-layer failures.
	KindIO
	// KindWarning covers recoverable, non-fatal skips.
	KindWarning
)

// Error is a FamDB error carrying a taxonomy kind, an optional hint,
// and the offending term/accession when known.
type Error struct {
	Kind  Kind
	Msg   string
	Hint  string
	Term  string
	Cause error
}

func (e *Error) Error() string {
	s := e.Msg
	if e.Term != "" {
		s = fmt.Sprintf("%s: %q", s, e.Term)
	}
	if e.Cause != nil {
		s = fmt.Sprintf("%s: %s", s, e.Cause)
	}
	return s
}

// Unwrap lets errors.Is/errors.As see through to the cause.
func (e *Error) Unwrap() error { return e.Cause }

// User builds a KindUser error.
func User(msg string, args ...interface{}) *Error {
	return &Error{Kind: KindUser, Msg: fmt.Sprintf(msg, args...)}
}

// Data builds a KindData error.
func Data(msg string, args ...interface{}) *Error {
	return &Error{Kind: KindData, Msg: fmt.Sprintf(msg, args...)}
}

// IO wraps err as a KindIO error, preserving the pkg/errors cause chain.
func IO(err error, msg string, args ...interface{}) *Error {
	return &Error{Kind: KindIO, Msg: fmt.Sprintf(msg, args...), Cause: errors.WithStack(err)}
}

// WithHint attaches a one-line remediation hint.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithTerm attaches the offending user-facing term or accession.
func (e *Error) WithTerm(term string) *Error {
	e.Term = term
	return e
}

// ExitCode maps an error to the CLI exit codes from spec.md §6/§7.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var fe *Error
	if errors.As(err, &fe) {
		switch fe.Kind {
		case KindUser:
			return 1
		case KindData:
			return 2
		case KindIO:
			return 3
		case KindWarning:
			return 0
		}
	}
	return 1
}
