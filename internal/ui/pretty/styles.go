// Package pretty renders lint results for a terminal with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/gradlint/pkg/config"
)

// Styles holds one lipgloss style per element of lint output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 256 palette indexes.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorBlue   = "12"
	colorCyan   = "14"
	colorGrey   = "8"
	colorLight  = "7"
)

// painter builds styles; the plain painter ignores colour and emphasis.
type painter struct {
	color bool
}

func (p painter) fg(color string) lipgloss.Style {
	if !p.color {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

func (p painter) bold(style lipgloss.Style) lipgloss.Style {
	if !p.color {
		return style
	}
	return style.Bold(true)
}

// NewStyles returns coloured styles, or styles that render text unchanged
// when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	p := painter{color: colorEnabled}
	plain := lipgloss.NewStyle()

	suggestion := p.fg(colorGreen)
	if colorEnabled {
		suggestion = suggestion.Italic(true)
	}

	return &Styles{
		Error:   p.bold(p.fg(colorRed)),
		Warning: p.bold(p.fg(colorYellow)),
		Info:    p.bold(p.fg(colorBlue)),

		FilePath:   p.bold(plain),
		Location:   p.fg(colorGrey),
		RuleID:     p.fg(colorGrey),
		Message:    plain,
		Suggestion: suggestion,
		SourceLine: p.fg(colorLight),
		Caret:      p.fg(colorRed),

		DiffHeader:  p.bold(plain),
		DiffHunk:    p.fg(colorCyan),
		DiffAdd:     p.fg(colorGreen),
		DiffRemove:  p.fg(colorRed),
		DiffContext: p.fg(colorGrey),

		SummaryTitle: p.bold(plain),
		SummaryValue: plain,
		Success:      p.bold(p.fg(colorGreen)),
		Failure:      p.bold(p.fg(colorRed)),

		Dim:  p.fg(colorGrey),
		Bold: p.bold(plain),
	}
}

// Severity returns the style for a severity level. Unknown levels render
// dimmed.
func (s *Styles) Severity(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	case config.SeverityInfo:
		return s.Info
	default:
		return s.Dim
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never")
// against w. Auto enables colour only for a terminal with NO_COLOR unset.
func IsColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
