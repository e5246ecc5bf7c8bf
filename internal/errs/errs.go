// Package errs is the shared error taxonomy for decb, os9, and basic.
//
// Every failure that crosses a package boundary is wrapped in an *Error
// carrying one of the Kind values below, so callers can branch on cause
// with errors.Is(err, errs.NotFound) etc. rather than string-matching.
package errs

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies why an operation failed. Kind values double as sentinel
// errors: errors.Is(err, errs.NotFound) holds for any *Error of that Kind.
type Kind string

const (
	// InvalidImage: sector read out of range, header size absurd, directory
	// sector unreadable.
	InvalidImage Kind = "invalid image"
	// NotFound: file name not present in directory.
	NotFound Kind = "not found"
	// OutOfSpace: free granules/clusters less than required.
	OutOfSpace Kind = "out of space"
	// DirectoryFull: no free slot in the directory track.
	DirectoryFull Kind = "directory full"
	// ReadOnly: mutation attempted on a read-only (OS-9) volume.
	ReadOnly Kind = "read only"
	// IsDirectory: extract attempted on a directory entry.
	IsDirectory Kind = "is a directory"
	// BadName: name cannot be normalized to 8.3 ASCII.
	BadName Kind = "bad name"
	// BadToken: a token byte had no table entry. Never raised as an *Error —
	// basic.Detokenize counts these on its Result instead of failing, since
	// an unknown token decodes to a placeholder rather than aborting. Kept
	// here so the full taxonomy is named in one place.
	BadToken Kind = "bad token"
)

func (k Kind) Error() string { return string(k) }

// Error wraps a Kind with the operation that raised it and an optional
// underlying cause. Wrapped is built with github.com/pkg/errors, so it
// carries a stack trace (printed by formatting Wrapped itself with %+v;
// Error() includes only its message).
type Error struct {
	Kind    Kind
	Op      string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap exposes Kind as the sentinel errors.Is matches against.
func (e *Error) Unwrap() error { return e.Kind }

// Cause satisfies github.com/pkg/errors' Causer interface, so
// errors.Cause(err) reaches the innermost wrapped error.
func (e *Error) Cause() error {
	if e.Wrapped != nil {
		return e.Wrapped
	}
	return e.Kind
}

// New builds an *Error with no wrapped cause.
func New(op string, kind Kind) error {
	return &Error{Op: op, Kind: kind}
}

// Wrap builds an *Error wrapping cause with context via pkg/errors so the
// original message survives in the chain.
func Wrap(op string, kind Kind, cause error) error {
	return &Error{Op: op, Kind: kind, Wrapped: pkgerrors.Wrap(cause, op)}
}

// Is reports whether err (or anything it wraps) carries kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		err = errors.Unwrap(err)
	}
	if e == nil {
		return false
	}
	return e.Kind == kind
}
