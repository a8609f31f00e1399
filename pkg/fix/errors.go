package fix

import (
	"errors"
	"fmt"
)

var (
	// ErrIOFailure wraps file system errors raised while building a fix.
	ErrIOFailure = errors.New("io failure")

	// ErrNotTextual is returned when a file create or delete fix is handed to
	// the text applier.
	ErrNotTextual = errors.New("fix does not edit text")
)

// InvalidRangeError describes a fix whose extent is impossible, either at
// construction or against the content it is applied to.
type InvalidRangeError struct {
	Kind   Kind
	File   string
	From   int
	To     int
	Reason string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid %s range [%d,%d] in %s: %s", e.Kind, e.From, e.To, e.File, e.Reason)
}

// ConflictError describes two shareable fixes against one file whose extents
// overlap. Accepted was kept; Rejected was skipped.
type ConflictError struct {
	File     string
	Accepted Fix
	Rejected Fix
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting fixes in %s: %s overlaps %s", e.File, e.Rejected, e.Accepted)
}
