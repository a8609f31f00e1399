package reporter

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gertd/go-pluralize"

	"github.com/yaklabco/gradlint/internal/ui/pretty"
	"github.com/yaklabco/gradlint/pkg/analysis"
)

const summaryWidth = 90

// column is one cell layout of a summary table. Cells longer than width
// are truncated with an ellipsis; keepTail keeps the end of the text.
type column struct {
	title    string
	width    int
	right    bool
	keepTail bool
}

func (c column) cell(text string, style lipgloss.Style) string {
	runes := []rune(text)
	if len(runes) > c.width {
		if c.keepTail {
			text = "…" + string(runes[len(runes)-c.width+1:])
		} else {
			text = string(runes[:c.width-1]) + "…"
		}
	}
	align := lipgloss.Left
	if c.right {
		align = lipgloss.Right
	}
	return style.Width(c.width).Align(align).Render(text)
}

var (
	ruleColumns = []column{
		{title: "Rule", width: 30},
		{title: "Count", width: 7, right: true},
		{title: "Errors", width: 7, right: true},
		{title: "Warnings", width: 9, right: true},
		{title: "Fixable", width: 8, right: true},
		{title: "Fixes", width: 24},
	}
	fileColumns = []column{
		{title: "File", width: 60, keepTail: true},
		{title: "Count", width: 7, right: true},
		{title: "Errors", width: 7, right: true},
		{title: "Warnings", width: 9, right: true},
	}
)

// SummaryRenderer prints per-rule and per-file tables followed by a totals
// line.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	plural *pluralize.Client
	out    io.Writer
}

func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		plural: pluralize.NewClient(),
		out:    opts.Writer,
	}
}

func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	tables := []func(){
		func() { r.ruleTable(report.ByRule) },
		func() { r.fileTable(report.ByFile) },
	}
	if r.opts.SummaryOrder == SummaryOrderFiles {
		slices.Reverse(tables)
	}
	for _, table := range tables {
		table()
	}

	r.totals(report.Totals)
	return nil
}

func (r *SummaryRenderer) header(title string, cols []column) {
	rule := r.styles.Dim.Render(strings.Repeat("─", summaryWidth))
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = c.cell(c.title, r.styles.Bold)
	}
	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, strings.TrimRight(strings.Join(cells, " "), " "))
	fmt.Fprintln(r.out, rule)
}

func (r *SummaryRenderer) row(cells ...string) {
	fmt.Fprintln(r.out, strings.TrimRight(strings.Join(cells, " "), " "))
}

// nameStyle colours a row label by the worst severity it carries.
func (r *SummaryRenderer) nameStyle(counts analysis.SeverityCounts) lipgloss.Style {
	switch {
	case counts.Errors > 0:
		return r.styles.Error
	case counts.Warnings > 0:
		return r.styles.Warning
	default:
		return r.styles.Message
	}
}

func (r *SummaryRenderer) ruleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}
	r.header("By rule", ruleColumns)

	plain := r.styles.Message
	for _, rule := range rules {
		fixable := ruleColumns[4].cell("", plain)
		if rule.Fixable {
			fixable = ruleColumns[4].cell("✓", r.styles.Success)
		}
		r.row(
			ruleColumns[0].cell(r.opts.RuleFormat.Label(rule.RuleID, rule.RuleName), r.nameStyle(rule.SeverityCounts)),
			ruleColumns[1].cell(strconv.Itoa(rule.Issues), plain),
			ruleColumns[2].cell(strconv.Itoa(rule.Errors), plain),
			ruleColumns[3].cell(strconv.Itoa(rule.Warnings), plain),
			fixable,
			ruleColumns[5].cell(fixKinds(rule.FixKinds), r.styles.Dim),
		)
	}
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}
	r.header("By file", fileColumns)

	plain := r.styles.Message
	for _, file := range files {
		r.row(
			fileColumns[0].cell(file.Path, r.nameStyle(file.SeverityCounts)),
			fileColumns[1].cell(strconv.Itoa(file.Issues), plain),
			fileColumns[2].cell(strconv.Itoa(file.Errors), plain),
			fileColumns[3].cell(strconv.Itoa(file.Warnings), plain),
		)
	}
	fmt.Fprintln(r.out)
}

// fixKinds lists fix kinds by name, with a count when a kind repeats.
func fixKinds(kinds map[string]int) string {
	names := slices.Sorted(maps.Keys(kinds))
	for i, name := range names {
		if n := kinds[name]; n > 1 {
			names[i] = name + "×" + strconv.Itoa(n)
		}
	}
	return strings.Join(names, ", ")
}

func (r *SummaryRenderer) totals(totals analysis.Totals) {
	line := r.plural.Pluralize("issue", totals.Issues, true)

	var bySeverity []string
	if totals.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(r.plural.Pluralize("error", totals.Errors, true)))
	}
	if totals.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(r.plural.Pluralize("warning", totals.Warnings, true)))
	}
	if len(bySeverity) > 0 {
		line += " (" + strings.Join(bySeverity, ", ") + ")"
	}

	line += " in " + r.plural.Pluralize("file", totals.FilesWithIssues, true)
	if totals.Fixable > 0 {
		line += ", " + r.styles.Success.Render(strconv.Itoa(totals.Fixable)+" fixable")
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}
