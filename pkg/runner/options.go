// Package runner discovers build scripts under a set of paths and runs the
// lint pipeline over them with a bounded worker pool.
package runner

import "github.com/yaklabco/gradlint/pkg/config"

// Options selects the files to lint and how many to lint at once.
type Options struct {
	// Paths are files or directories; "." when empty. Relative paths are
	// resolved against WorkingDir, or the process directory.
	Paths      []string
	WorkingDir string

	// Suffixes name build scripts; DefaultSuffixes when empty.
	Suffixes []string

	// IncludeGlobs and ExcludeGlobs are doublestar patterns relative to
	// WorkingDir. Includes restrict the set when non-empty; excludes are
	// added to DefaultExcludes.
	IncludeGlobs []string
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs caps concurrent workers; <= 0 means one per CPU.
	Jobs int

	Config *config.Config
}

func DefaultSuffixes() []string {
	return []string{".gradle", ".gradle.kts"}
}

// DefaultExcludes skips the directories Gradle writes build output and
// caches to.
func DefaultExcludes() []string {
	return []string{"**/build/**", "**/.gradle/**"}
}

func (o Options) effectiveSuffixes() []string {
	if len(o.Suffixes) == 0 {
		return DefaultSuffixes()
	}
	return o.Suffixes
}

func (o Options) effectiveExcludes() []string {
	return append(DefaultExcludes(), o.ExcludeGlobs...)
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
