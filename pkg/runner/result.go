package runner

import (
	"cmp"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
)

// FileOutcome is what happened to one discovered build script. Exactly one
// of Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats totals a run. Violation counts describe what is left after fixing.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int // changed on disk during the run
	FilesErrored    int
	FilesWithIssues int
	FilesModified   int // rewritten or deleted
	FilesCreated    int

	ViolationsTotal      int
	ViolationsFixable    int
	ViolationsBySeverity map[config.Severity]int

	FixesApplied int
	Conflicts    int // fixes dropped in the final pass because they overlapped
}

// Result is a whole run, with Files ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

func newStats() Stats {
	return Stats{ViolationsBySeverity: make(map[config.Severity]int)}
}

// HasFailures reports whether any error-severity violation remains.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.ViolationsBySeverity[config.SeverityError] > 0
}

func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.ViolationsTotal > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	s := &r.Stats

	pr := outcome.Result
	switch {
	case outcome.Error != nil:
		s.FilesErrored++
		return
	case pr == nil:
		return
	}

	s.FilesProcessed++
	if pr.Skipped {
		s.FilesSkipped++
	}
	if pr.Written || len(pr.Deleted) > 0 {
		s.FilesModified++
	}
	s.FilesCreated += len(pr.Created)
	s.FixesApplied += pr.TotalFixesApplied

	if pr.FileResult == nil {
		return
	}
	s.ViolationsTotal += len(pr.Violations)
	s.ViolationsFixable += pr.FixableCount()
	s.Conflicts += len(pr.Conflicts)
	if len(pr.Violations) > 0 {
		s.FilesWithIssues++
	}
	for _, v := range pr.Violations {
		s.ViolationsBySeverity[cmp.Or(v.Severity, config.SeverityWarning)]++
	}
}
