package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var fixed string
	if stats.FixesApplied > 0 {
		fixed = s.Success.Render(countOf(stats.FixesApplied, "fix") + " applied in " + countOf(stats.FilesModified, "file"))
	}

	if stats.ViolationsTotal == 0 {
		msg := s.Success.Render("No issues found") + s.Dim.Render(" ("+countOf(stats.FilesProcessed, "file")+" checked)")
		if fixed != "" {
			msg += ", " + fixed
		}
		return msg + "\n"
	}

	var severityParts []string
	if n := stats.ViolationsBySeverity[config.SeverityError]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(countOf(n, "error")))
	}
	if n := stats.ViolationsBySeverity[config.SeverityWarning]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(countOf(n, "warning")))
	}
	if n := stats.ViolationsBySeverity[config.SeverityInfo]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(strconv.Itoa(n)+" info"))
	}

	main := countOf(stats.ViolationsTotal, "issue")
	if len(severityParts) > 0 {
		main += " (" + strings.Join(severityParts, ", ") + ")"
	}
	parts := []string{main + " in " + countOf(stats.FilesWithIssues, "file")}

	if stats.ViolationsFixable > 0 {
		parts = append(parts, s.Success.Render(strconv.Itoa(stats.ViolationsFixable)+" fixable"))
	}
	if fixed != "" {
		parts = append(parts, fixed)
	}
	if stats.Conflicts > 0 {
		parts = append(parts, s.Warning.Render(countOf(stats.Conflicts, "conflict")+" deferred"))
	}

	return strings.Join(parts, ", ") + "\n"
}

// summaryRow is one "label value" line of the summary block. Rows with a
// zero value are skipped unless always is set.
type summaryRow struct {
	label  string
	value  int
	style  lipgloss.Style
	always bool
}

// FormatSummary renders run statistics as a titled block followed by the
// overall verdict.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	bySeverity := stats.ViolationsBySeverity
	sections := [][]summaryRow{
		{
			{label: "Files checked:", value: stats.FilesProcessed, style: s.SummaryValue, always: true},
			{label: "Files with issues:", value: stats.FilesWithIssues, style: s.Failure},
			{label: "Files modified:", value: stats.FilesModified, style: s.Success},
			{label: "Files created:", value: stats.FilesCreated, style: s.Success},
			{label: "Files errored:", value: stats.FilesErrored, style: s.Failure},
		},
		{
			{label: "Total issues:", value: stats.ViolationsTotal, style: s.SummaryValue, always: true},
			{label: "  Errors:", value: bySeverity[config.SeverityError], style: s.Error},
			{label: "  Warnings:", value: bySeverity[config.SeverityWarning], style: s.Warning},
			{label: "  Info:", value: bySeverity[config.SeverityInfo], style: s.Info},
			{label: "Fixes applied:", value: stats.FixesApplied, style: s.Success},
			{label: "Fixes deferred:", value: stats.Conflicts, style: s.Warning},
		},
	}

	var sb strings.Builder
	sb.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	sb.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")
	for _, rows := range sections {
		for _, r := range rows {
			if r.value == 0 && !r.always {
				continue
			}
			fmt.Fprintf(&sb, "  %-19s%s\n", r.label, r.style.Render(strconv.Itoa(r.value)))
		}
		sb.WriteString("\n")
	}

	switch {
	case bySeverity[config.SeverityError] > 0 || stats.FilesErrored > 0:
		sb.WriteString(s.Failure.Render("Lint failed with errors"))
	case bySeverity[config.SeverityWarning] > 0:
		sb.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		sb.WriteString(s.Success.Render("Lint passed"))
	}
	sb.WriteString("\n")
	return sb.String()
}
