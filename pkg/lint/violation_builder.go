package lint

import (
	"unicode/utf8"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/script"
)

// Position is a 1-based source range. EndColumn is exclusive.
type Position struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// LinePosition returns the position covering the whole of line.
func LinePosition(line script.Line) Position {
	return Position{
		StartLine:   line.Number,
		StartColumn: 1,
		EndLine:     line.Number,
		EndColumn:   utf8.RuneCountInString(line.Code) + 1,
	}
}

// SpanPosition returns the position of span on line n.
func SpanPosition(n int, span script.Span) Position {
	return Position{StartLine: n, StartColumn: span.Start, EndLine: n, EndColumn: span.End}
}

// Position returns the violation position.
func (v *Violation) Position() Position {
	return Position{
		StartLine:   v.StartLine,
		StartColumn: v.StartColumn,
		EndLine:     v.EndLine,
		EndColumn:   v.EndColumn,
	}
}

// ViolationBuilder helps construct Violation values.
type ViolationBuilder struct {
	v Violation
}

// NewViolation starts building a violation covering a whole line.
func NewViolation(ruleID string, doc *script.Document, line script.Line, message string) *ViolationBuilder {
	path := ""
	if doc != nil {
		path = doc.Path
	}
	return NewViolationAt(ruleID, path, LinePosition(line), message)
}

// NewViolationAt starts building a violation at a specific position.
func NewViolationAt(ruleID, filePath string, pos Position, message string) *ViolationBuilder {
	return &ViolationBuilder{
		v: Violation{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// WithSeverity sets the severity.
func (b *ViolationBuilder) WithSeverity(s config.Severity) *ViolationBuilder {
	b.v.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *ViolationBuilder) WithSuggestion(s string) *ViolationBuilder {
	b.v.Suggestion = s
	return b
}

// WithFix attaches the result of a fix factory. A non-nil err is kept as
// FixErr and no fix is attached.
func (b *ViolationBuilder) WithFix(f fix.Fix, err error) *ViolationBuilder {
	if err != nil {
		b.v.Fix = nil
		b.v.FixErr = err
		return b
	}
	b.v.Fix = &f
	b.v.FixErr = nil
	return b
}

// Build returns the constructed Violation.
func (b *ViolationBuilder) Build() Violation {
	return b.v
}
