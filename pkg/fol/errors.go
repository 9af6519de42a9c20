package fol

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds enumerated in spec.md §7. Following
// the teacher pack's fd.go convention: package-level sentinels via
// errors.New, wrapped with fmt.Errorf("...: %w", err) at call sites so
// callers can errors.Is against a stable value.
var (
	// ErrNotDefiniteClause is returned when tell is given a clause with
	// other than exactly one positive literal for an engine that only
	// accepts the definite fragment (backward.go).
	ErrNotDefiniteClause = errors.New("fol: clause is not definite")

	// ErrMalformedClause is returned when a Sentence is passed where an
	// already-clausal form (a disjunction of literals) was required.
	ErrMalformedClause = errors.New("fol: sentence is not a valid clause")

	// ErrDuplicateClause is returned by a clause store's strict-add path
	// when the clause is already present.
	ErrDuplicateClause = errors.New("fol: duplicate clause")

	// ErrUnknownVariant denotes an exhaustive match falling through to a
	// variant the algebra does not define. spec.md §7 calls this a
	// programmer error: fatal, not recoverable by retry. Normalize reports
	// it as a regular Go error (see unknownVariantError /
	// recoverUnknownVariant); other exported entry points, such as
	// SentenceRewriter, let the panic propagate to the caller.
	ErrUnknownVariant = errors.New("fol: unknown sentence or term variant")

	// ErrCancelled surfaces a caller-requested cancellation of a
	// long-running search (spec.md §5, §7). It is a normal outcome, not a
	// malformed-input error.
	ErrCancelled = errors.New("fol: search cancelled")
)

// unknownVariantError carries the offending value through a panic/recover
// so the CNF normalizer's entry point (Normalize) can turn an
// exhaustiveness failure into a regular error
// wrapping ErrUnknownVariant, rather than crashing the process.
type unknownVariantError struct {
	node any
}

func (e unknownVariantError) Error() string {
	return fmt.Sprintf("%v: %T", ErrUnknownVariant, e.node)
}

func (e unknownVariantError) Unwrap() error { return ErrUnknownVariant }

// recoverUnknownVariant is deferred by public entry points that call into
// code which panics with unknownVariantError on an exhaustiveness failure.
// Any other panic value is re-raised unchanged.
func recoverUnknownVariant(err *error) {
	if r := recover(); r != nil {
		if uv, ok := r.(unknownVariantError); ok {
			*err = uv
			return
		}
		panic(r)
	}
}
