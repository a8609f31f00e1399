package fix

import (
	"slices"

	"github.com/samber/lo"
)

// Patchset is a set of fixes emitted together as one change to a file.
type Patchset struct {
	File      SourceFile
	Fixes     []Fix
	Exclusive bool
}

// IsExclusive reports whether f must be emitted in a patchset of its own.
func IsExclusive(f Fix) bool {
	return f.RequiresOwnPatchset()
}

// Partition splits fixes into shareable and exclusive ones, keeping order.
func Partition(fixes []Fix) (shareable, exclusive []Fix) {
	return lo.Reject(fixes, func(f Fix, _ int) bool { return IsExclusive(f) }),
		lo.Filter(fixes, func(f Fix, _ int) bool { return IsExclusive(f) })
}

// Group classifies fixes into patchsets. For each file path, in path order,
// it yields one patchset holding every shareable fix followed by one
// patchset per exclusive fix. Collection order is kept within a patchset.
func Group(fixes []Fix) []Patchset {
	byPath := lo.GroupBy(fixes, func(f Fix) string { return f.Path() })
	paths := lo.Keys(byPath)
	slices.Sort(paths)

	var out []Patchset
	for _, path := range paths {
		shareable, exclusive := Partition(byPath[path])
		if len(shareable) > 0 {
			out = append(out, Patchset{File: shareable[0].File(), Fixes: shareable})
		}
		for _, f := range exclusive {
			out = append(out, Patchset{File: f.File(), Fixes: []Fix{f}, Exclusive: true})
		}
	}
	return out
}
