// Package errs narrows cockroachdb/errors to the three operations the rest
// of the codebase uses. Wrapped causes keep their stack traces; Mark ties a
// low-level failure to the sentinel the handler layer switches on.
package errs

import (
	cr "github.com/cockroachdb/errors"
)

// New creates an error with a stack trace attached.
func New(msg string) error {
	return cr.New(msg)
}

// Wrap annotates err with msg. Returns nil when err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

// Mark makes errors.Is(err, markErr) report true while keeping err's own
// message and stack. A nil err collapses to the mark itself.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}
