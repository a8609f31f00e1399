// Package analysis aggregates runner results into per-file and per-rule
// views for the summary and JSON reporters.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/runner"
)

// ReportVersion is the version of the report layout.
const ReportVersion = "1.0.0"

const (
	severityError   = "error"
	severityWarning = "warning"
	severityInfo    = "info"
)

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	if rel, err := filepath.Rel(workDir, path); err == nil {
		return rel
	}
	return path
}

func normalizeSeverity(sev string) string {
	if sev == "" {
		return severityWarning
	}
	return sev
}

// group accumulates one ByFile or ByRule row together with the distinct
// keys on the other axis.
type group[T any] struct {
	row     T
	members map[string]struct{}
}

type groups[T any] struct {
	byKey map[string]*group[T]
	init  func(key string) T
}

func newGroups[T any](init func(key string) T) *groups[T] {
	return &groups[T]{byKey: make(map[string]*group[T]), init: init}
}

func (g *groups[T]) get(key, member string) *T {
	grp, ok := g.byKey[key]
	if !ok {
		grp = &group[T]{row: g.init(key), members: make(map[string]struct{})}
		g.byKey[key] = grp
	}
	grp.members[member] = struct{}{}
	return &grp.row
}

// rows returns every row, after attach hands it the sorted member list.
func (g *groups[T]) rows(attach func(row *T, members []string)) []T {
	out := make([]T, 0, len(g.byKey))
	for _, grp := range g.byKey {
		members := lo.Keys(grp.members)
		slices.Sort(members)
		attach(&grp.row, members)
		out = append(out, grp.row)
	}
	return out
}

// sortKey exposes what the sort orders need from a row.
type sortKey struct {
	name   string
	issues int
	counts SeverityCounts
}

func sortRows[T any](rows []T, key func(T) sortKey, opts Options) {
	slices.SortFunc(rows, func(a, b T) int {
		left, right := key(a), key(b)
		switch opts.SortBy {
		case SortByAlpha:
			return cmp.Compare(left.name, right.name)
		case SortBySeverity:
			return cmp.Or(
				cmp.Compare(right.counts.Errors, left.counts.Errors),
				cmp.Compare(right.counts.Warnings, left.counts.Warnings),
				cmp.Compare(right.issues, left.issues),
				cmp.Compare(left.name, right.name),
			)
		default:
			byCount := cmp.Compare(left.issues, right.issues)
			if opts.SortDesc {
				byCount = -byCount
			}
			return cmp.Or(byCount, cmp.Compare(left.name, right.name))
		}
	})
}

// NewViolationEntry builds a report entry for v found in path. An empty
// severity is reported as a warning.
func NewViolationEntry(path, severity string, v *lint.Violation) ViolationEntry {
	entry := ViolationEntry{
		FilePath:    path,
		RuleID:      v.RuleID,
		RuleName:    v.RuleName,
		Severity:    normalizeSeverity(severity),
		Message:     v.Message,
		StartLine:   v.StartLine,
		StartColumn: v.StartColumn,
		EndLine:     v.EndLine,
		EndColumn:   v.EndColumn,
		Suggestion:  v.Suggestion,
		Fixable:     v.HasFix(),
	}
	if v.Fix != nil {
		entry.Fix = NewFixEntry(*v.Fix)
	}
	if v.FixErr != nil {
		entry.FixError = v.FixErr.Error()
	}
	return entry
}

// NewFixEntry describes f for reports.
func NewFixEntry(f fix.Fix) *FixEntry {
	entry := &FixEntry{
		Kind:       f.Kind().String(),
		Path:       f.Path(),
		FromLine:   f.From(),
		FromColumn: f.FromColumn(),
		ToLine:     f.To(),
		ToColumn:   f.ToColumn(),
	}
	if text, ok := f.Changes(); ok {
		entry.NewText = text
	}
	return entry
}

// Analyze builds a Report from a run in a single pass over its outcomes.
// A nil result yields an empty report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion, Timestamp: time.Now()}
	if result == nil {
		return report
	}

	files := newGroups(func(path string) FileAnalysis { return FileAnalysis{Path: path} })
	rules := newGroups(func(id string) RuleAnalysis { return RuleAnalysis{RuleID: id} })
	totals := &report.Totals

	for _, outcome := range result.Files {
		totals.Files++
		path := displayPath(outcome.Path, opts.WorkingDir)

		if outcome.Error != nil {
			totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{Path: path, Message: outcome.Error.Error()})
			continue
		}

		pr := outcome.Result
		if pr == nil {
			continue
		}
		countOutcome(totals, pr)
		if pr.FileResult == nil {
			continue
		}
		totals.Conflicts += len(pr.Conflicts)
		if len(pr.Violations) > 0 {
			totals.FilesWithIssues++
		}

		for i := range pr.Violations {
			v := &pr.Violations[i]
			severity := normalizeSeverity(string(v.Severity))

			totals.Issues++
			totals.add(severity)
			if v.HasFix() {
				totals.Fixable++
			}

			fa := files.get(path, v.RuleID)
			fa.Issues++
			fa.add(severity)

			ra := rules.get(v.RuleID, path)
			ra.RuleName = cmp.Or(ra.RuleName, v.RuleName)
			ra.Issues++
			ra.add(severity)
			if v.HasFix() {
				ra.Fixable = true
				if ra.FixKinds == nil {
					ra.FixKinds = make(map[string]int)
				}
				ra.FixKinds[v.Fix.Kind().String()]++
			}

			if opts.IncludeViolations {
				report.Violations = append(report.Violations, NewViolationEntry(path, severity, v))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = rules.rows(func(r *RuleAnalysis, members []string) { r.Files = members })
		sortRows(report.ByRule, func(r RuleAnalysis) sortKey {
			return sortKey{name: r.RuleID, issues: r.Issues, counts: r.SeverityCounts}
		}, opts)
	}
	if opts.IncludeByFile {
		report.ByFile = files.rows(func(f *FileAnalysis, members []string) { f.Rules = members })
		sortRows(report.ByFile, func(f FileAnalysis) sortKey {
			return sortKey{name: f.Path, issues: f.Issues, counts: f.SeverityCounts}
		}, opts)
	}

	return report
}

// countOutcome records what the pipeline did to the file system.
func countOutcome(totals *Totals, pr *lint.PipelineResult) {
	if pr.Skipped {
		totals.FilesSkipped++
	}
	if pr.Written || len(pr.Deleted) > 0 || len(pr.Created) > 0 {
		totals.FilesModified++
	}
	totals.FilesCreated += len(pr.Created)
	totals.FilesDeleted += len(pr.Deleted)
	totals.FixesApplied += pr.TotalFixesApplied
}
