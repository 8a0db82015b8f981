package services

import (
	"errors"
	"fmt"
)

// Error taxonomy for the curation and voting flows. Every failure path in
// the services returns one of these (or a wrapped storage error); handlers
// map them onto HTTP status codes in one place.

// ErrAuthRequired marks operations attempted without an authenticated
// identity. Handlers turn it into a 401 with a distinguishable body so the
// client can redirect to sign-in instead of showing a generic failure.
var ErrAuthRequired = errors.New("authentication required")

// ErrForbidden marks operations by an authenticated user on someone else's
// collection.
var ErrForbidden = errors.New("not the collection creator")

// ValidationError reports malformed or out-of-bounds input before any
// storage access happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ResolutionError reports that one specific list entry could not be resolved
// to a place. It aborts the whole save so the user can remove or retry the
// entry.
type ResolutionError struct {
	Index int
	Name  string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("could not resolve place %q (entry %d): %v", e.Name, e.Index, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ConflictError reports a unique-constraint violation that the single
// re-fetch retry could not absorb.
type ConflictError struct {
	Resource string
	Err      error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %v", e.Resource, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// LookupError reports a failure of the external place-lookup collaborator
// (timeout, non-200, malformed body).
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("place lookup %s failed: %v", e.Op, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
