package fix

import (
	"cmp"
	"slices"
)

// SortFixes sorts fixes by From ascending, then To ascending. The sort is
// stable, so fixes with equal extents keep collection order.
func SortFixes(fixes []Fix) {
	slices.SortStableFunc(fixes, func(a, b Fix) int {
		if c := cmp.Compare(a.from, b.from); c != 0 {
			return c
		}
		return cmp.Compare(a.to, b.to)
	})
}

// Resolve picks the fixes that can be applied together against the original
// text of one file. The input is not modified.
//
// Fixes are walked in SortFixes order. A range fix overlaps when it starts at
// or before the end of the last accepted range fix. An insertion overlaps
// only when it falls strictly inside that range; one anchored at the range's
// first line or just past its last line does not. Each overlapping fix is
// rejected with a ConflictError and the walk continues.
//
// Exclusive fixes are never compared; they are passed through as accepted.
func Resolve(fixes []Fix) (accepted []Fix, conflicts []*ConflictError) {
	sorted := slices.Clone(fixes)
	SortFixes(sorted)

	accepted = make([]Fix, 0, len(sorted))
	var last *Fix

	for i := range sorted {
		candidate := sorted[i]
		if IsExclusive(candidate) {
			accepted = append(accepted, candidate)
			continue
		}

		if last != nil && overlaps(*last, candidate) {
			conflicts = append(conflicts, &ConflictError{
				File:     candidate.Path(),
				Accepted: *last,
				Rejected: candidate,
			})
			continue
		}

		accepted = append(accepted, candidate)
		if !candidate.IsInsertion() {
			last = &sorted[i]
		}
	}

	return accepted, conflicts
}

func overlaps(rangeFix, candidate Fix) bool {
	if candidate.IsInsertion() {
		return rangeFix.from < candidate.from && candidate.from <= rangeFix.to
	}
	return candidate.from <= rangeFix.to
}

// ApplyOrder returns accepted fixes in the order Apply processes them:
// From descending, larger To first for equal From. Fixes with equal extents
// come out in reverse collection order, so insertions at one point end up in
// collection order once applied.
func ApplyOrder(accepted []Fix) []Fix {
	ordered := slices.Clone(accepted)
	SortFixes(ordered)
	slices.Reverse(ordered)
	return ordered
}
