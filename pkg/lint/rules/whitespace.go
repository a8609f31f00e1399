package rules

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/lint"
)

// LineEndingsRule checks that a script uses LF line endings.
type LineEndingsRule struct {
	lint.BaseRule
}

// NewLineEndingsRule creates a new line endings rule.
func NewLineEndingsRule() *LineEndingsRule {
	return &LineEndingsRule{
		BaseRule: lint.NewBaseRule(
			"GL006",
			"line-endings",
			"Build scripts should use LF line endings",
			[]string{"whitespace"},
			true,
		),
	}
}

// Apply reports the first CRLF line and rewrites the whole file with LF.
func (r *LineEndingsRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	content := ctx.Doc.Content
	idx := bytes.Index(content, []byte("\r\n"))
	if idx < 0 {
		return nil, nil
	}

	lineNum := bytes.Count(content[:idx], []byte("\n")) + 1
	count := bytes.Count(content, []byte("\r\n"))
	line, _ := ctx.Doc.Line(lineNum)

	normalized := strings.ReplaceAll(string(content), "\r\n", "\n")
	v := lint.NewViolation(r.ID(), ctx.Doc, line,
		fmt.Sprintf("File uses CRLF line endings (%d lines)", count)).
		WithSuggestion("Convert line endings to LF").
		WithFix(fix.ReplaceWholeFile(ctx.File, normalized)).
		Build()
	return []lint.Violation{v}, nil
}

// TrailingWhitespaceRule checks for trailing whitespace on lines.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates a new trailing whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"GL010",
			"trailing-whitespace",
			"Lines should not have trailing spaces or tabs",
			[]string{"whitespace"},
			true,
		),
	}
}

// Apply checks for trailing whitespace on each line. A CR ending the line is
// left for the line-endings rule.
func (r *TrailingWhitespaceRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation

	for _, line := range ctx.Doc.Lines {
		if ctx.Cancelled() {
			return violations, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		text := strings.TrimSuffix(line.Text, "\r")
		trimmed := strings.TrimRight(text, " \t")
		if trimmed == text {
			continue
		}

		start := utf8.RuneCountInString(trimmed) + 1
		end := utf8.RuneCountInString(text) + 1
		pos := lint.Position{StartLine: line.Number, StartColumn: start, EndLine: line.Number, EndColumn: end}

		v := lint.NewViolationAt(r.ID(), ctx.Doc.Path, pos, "Trailing whitespace").
			WithSuggestion("Remove trailing whitespace").
			WithFix(fix.ReplaceRange(ctx.File, line.Number, start, line.Number, end, "")).
			Build()
		violations = append(violations, v)
	}

	return violations, nil
}
