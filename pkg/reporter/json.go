package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/analysis"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/runner"
)

// JSONOutput is the document the json format writes.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one linted file. Violations is always present, empty
// for a clean file.
type JSONFileResult struct {
	Path       string                    `json:"path"`
	Violations []analysis.ViolationEntry `json:"violations"`
	Modified   bool                      `json:"modified,omitempty"`
	Created    []string                  `json:"created,omitempty"`
	Deleted    []string                  `json:"deleted,omitempty"`
	Diffs      []string                  `json:"diffs,omitempty"`
	Conflicts  []string                  `json:"conflicts,omitempty"`
	Skipped    string                    `json:"skipped,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	Fixable         int            `json:"fixable"`
	FixesApplied    int            `json:"fixesApplied"`
	BySeverity      map[string]int `json:"bySeverity"`
}

func (s *JSONSummary) add(file JSONFileResult) {
	s.FilesChecked++
	if file.Error != "" {
		s.FilesErrored++
	}
	if len(file.Violations) > 0 {
		s.FilesWithIssues++
	}
	if file.Modified || len(file.Created) > 0 || len(file.Deleted) > 0 {
		s.FilesModified++
	}
	for _, v := range file.Violations {
		s.TotalIssues++
		s.BySeverity[v.Severity]++
		if v.Fixable {
			s.Fixable++
		}
	}
}

// JSONReporter writes a JSONOutput, indented unless Options.Compact.
type JSONReporter struct {
	opts Options
}

func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)
	return buffered(r.opts.Writer, func(w io.Writer) (int, error) {
		enc := json.NewEncoder(w)
		if !r.opts.Compact {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(output); err != nil {
			return 0, fmt.Errorf("encode JSON: %w", err)
		}
		return output.Summary.TotalIssues, nil
	})
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: analysis.ReportVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		entry := r.fileResult(file)
		if file.Result != nil {
			output.Summary.FixesApplied += file.Result.TotalFixesApplied
		}
		output.Summary.add(entry)
		output.Files = append(output.Files, entry)
	}
	return output
}

func (r *JSONReporter) fileResult(file runner.FileOutcome) JSONFileResult {
	path := displayPath(r.opts.WorkingDir, file.Path)
	entry := JSONFileResult{Path: path, Violations: []analysis.ViolationEntry{}}

	if file.Error != nil {
		entry.Error = file.Error.Error()
	}
	pr := file.Result
	if pr == nil {
		return entry
	}

	relative := func(p string, _ int) string { return displayPath(r.opts.WorkingDir, p) }
	entry.Modified = pr.Written
	if len(pr.Created) > 0 {
		entry.Created = lo.Map(pr.Created, relative)
	}
	if len(pr.Deleted) > 0 {
		entry.Deleted = lo.Map(pr.Deleted, relative)
	}
	if pr.Skipped {
		entry.Skipped = pr.SkipReason
	}
	for _, d := range pr.Diffs {
		entry.Diffs = append(entry.Diffs, d.FullString())
	}

	if pr.FileResult != nil {
		entry.Conflicts = lo.Map(pr.Conflicts, func(c *fix.ConflictError, _ int) string { return c.Error() })
		entry.Violations = lo.Map(pr.Violations, func(v lint.Violation, _ int) analysis.ViolationEntry {
			return analysis.NewViolationEntry(path, string(v.Severity), &v)
		})
	}
	return entry
}
