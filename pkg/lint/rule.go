// Package lint runs rules over parsed build scripts and drives the
// lint-and-fix pipeline.
package lint

import (
	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/fix"
)

// Violation is one finding of a rule. Lines and columns are 1-based;
// columns count runes.
type Violation struct {
	RuleID   string
	RuleName string
	Message  string
	Severity config.Severity
	FilePath string

	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	Suggestion string

	// Fix is nil when the rule has no fix for this finding.
	Fix *fix.Fix

	// FixErr explains a fix the rule tried and failed to build, for
	// example an IOFailure while counting lines. The violation is still
	// reported.
	FixErr error
}

func (v *Violation) HasFix() bool {
	return v.Fix != nil
}

// Metadata is the static description of a rule.
type Metadata interface {
	ID() string
	Name() string
	Description() string
	Tags() []string
	CanFix() bool
	DefaultEnabled() bool
	DefaultSeverity() config.Severity
}

// Rule inspects one build script.
//
// Apply returns a violation per finding, each with at most one fix built
// against ctx.File so line counts agree with the content being linted. An
// error means the rule itself failed; findings are never errors. Apply
// should return early once ctx.Ctx is cancelled.
type Rule interface {
	Metadata
	Apply(ctx *RuleContext) ([]Violation, error)
}
