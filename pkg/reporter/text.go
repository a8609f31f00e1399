package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gradlint/internal/ui/pretty"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/runner"
)

// TextReporter prints violations grouped by file, with the offending
// source line under each one.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

func (r *TextReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	return buffered(r.opts.Writer, func(w io.Writer) (int, error) {
		if result == nil || len(result.Files) == 0 {
			if r.opts.ShowSummary {
				fmt.Fprintln(w, r.styles.Success.Render("No build scripts to check."))
			}
			return 0, nil
		}

		total := 0
		for _, file := range result.Files {
			total += r.file(w, file)
		}
		if r.opts.ShowSummary {
			fmt.Fprint(w, r.styles.FormatSummaryOneLine(result.Stats))
		}
		return total, nil
	})
}

// note writes a one-line "path: text" status.
func (r *TextReporter) note(w io.Writer, path, text string, style lipgloss.Style) {
	writeNote(w, r.styles, displayPath(r.opts.WorkingDir, path), text, style)
}

func writeNote(w io.Writer, styles *pretty.Styles, path, text string, style lipgloss.Style) {
	fmt.Fprintf(w, "%s: %s\n", styles.FilePath.Render(path), style.Render(text))
}

// file writes the notes and violations of one outcome and returns the
// number of violations written.
func (r *TextReporter) file(w io.Writer, file runner.FileOutcome) int {
	if file.Error != nil {
		r.note(w, file.Path, fmt.Sprintf("error: %v", file.Error), r.styles.Error)
		return 0
	}
	pr := file.Result
	if pr == nil {
		return 0
	}

	if pr.Skipped {
		r.note(w, file.Path, pr.Summary(), r.styles.Warning)
	}
	for _, path := range pr.Created {
		r.note(w, path, "created", r.styles.Success)
	}
	for _, path := range pr.Deleted {
		r.note(w, path, "deleted", r.styles.Success)
	}

	if pr.FileResult == nil {
		return 0
	}
	for _, c := range pr.Conflicts {
		r.note(w, file.Path, "fix not applied: "+c.Error(), r.styles.Warning)
	}
	if len(pr.Violations) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(w, r.styles.FormatFileHeader(displayPath(r.opts.WorkingDir, file.Path), len(pr.Violations)))
	}
	for _, v := range pr.Violations {
		v.FilePath = displayPath(r.opts.WorkingDir, v.FilePath)
		var source string
		if r.opts.ShowContext {
			source = sourceLine(pr.FileResult, v.StartLine)
		}
		fmt.Fprint(w, r.styles.FormatViolation(&v, r.opts.ShowContext, source, r.opts.RuleFormat))
	}
	if r.opts.GroupByFile {
		fmt.Fprintln(w)
	}
	return len(pr.Violations)
}

// sourceLine returns line n of the linted document without its CR.
func sourceLine(fr *lint.FileResult, n int) string {
	if fr.Document == nil {
		return ""
	}
	if line, ok := fr.Document.Line(n); ok {
		return strings.TrimSuffix(line.Text, "\r")
	}
	return ""
}
