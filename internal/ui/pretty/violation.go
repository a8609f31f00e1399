package pretty

import (
	"fmt"
	"strings"

	"github.com/gertd/go-pluralize"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
)

var plural = pluralize.NewClient()

// countOf renders "1 issue", "3 issues".
func countOf(n int, word string) string {
	return plural.Pluralize(word, n, true)
}

// FormatViolation formats a single violation for terminal output.
func (s *Styles) FormatViolation(v *lint.Violation, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(v.FilePath),
		v.StartLine,
		v.StartColumn,
	)

	ruleIdentifier := ruleFormat.Label(v.RuleID, v.RuleName)
	ruleDisplay := s.RuleID.Render("(" + ruleIdentifier + ")")

	// location  severity  message  (rule)
	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s",
		location,
		s.FormatSeverity(v.Severity),
		s.Message.Render(v.Message),
		ruleDisplay,
	))
	if v.HasFix() {
		builder.WriteString(" " + s.Dim.Render("[fixable]"))
	}
	builder.WriteString("\n")

	if showContext && sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, v.StartColumn, v.EndColumn, v.StartLine == v.EndLine))
	}

	if v.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " +
			s.Suggestion.Render(v.Suggestion) + "\n")
	}

	if v.FixErr != nil {
		builder.WriteString("    " + s.Dim.Render("Fix unavailable:") + " " + v.FixErr.Error() + "\n")
	}

	return builder.String()
}

// FormatSeverity returns the severity name in its style.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	return s.Severity(sev).Render(string(sev))
}

// tabWidth matches the tab expansion lipgloss applies when rendering.
const tabWidth = 4

// FormatSourceContext formats the source line with a marker under the
// reported columns. Columns count runes; tabs are expanded so the marker
// lines up with the source.
func (s *Styles) FormatSourceContext(line string, startCol, endCol int, sameLine bool) string {
	var builder strings.Builder

	const indent = "        "
	tab := strings.Repeat(" ", tabWidth)

	builder.WriteString(indent + s.SourceLine.Render(strings.ReplaceAll(line, "\t", tab)) + "\n")

	if startCol <= 0 {
		return builder.String()
	}

	runes := []rune(line)
	var padding strings.Builder
	for i := 0; i < startCol-1; i++ {
		if i < len(runes) && runes[i] == '\t' {
			padding.WriteString(tab)
		} else {
			padding.WriteByte(' ')
		}
	}

	width := 1
	if sameLine && endCol > startCol {
		width = endCol - startCol
	}
	builder.WriteString(indent + padding.String() + s.Caret.Render(strings.Repeat("^", width)) + "\n")

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(" (" + countOf(issueCount, "issue") + ")")
	}
	return header
}
