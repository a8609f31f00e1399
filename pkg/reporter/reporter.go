// Package reporter renders lint results as text, JSON, SARIF, diffs or a summary.
package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gradlint/pkg/analysis"
	"github.com/yaklabco/gradlint/pkg/runner"
)

// Reporter writes the results of a run.
type Reporter interface {
	// Report writes result and returns the number of issues it reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an aggregated report. Formats that present totals rather
// than individual findings implement Renderer and are adapted to Reporter.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// constructors maps each format to the reporter that produces it.
//
//nolint:gochecknoglobals // fixed format table
var constructors = map[Format]func(Options) Reporter{
	FormatText:  func(o Options) Reporter { return NewTextReporter(o) },
	FormatJSON:  func(o Options) Reporter { return NewJSONReporter(o) },
	FormatSARIF: func(o Options) Reporter { return NewSARIFReporter(o) },
	FormatDiff:  func(o Options) Reporter { return NewDiffReporter(o) },
	FormatSummary: func(o Options) Reporter {
		return &analyzed{renderer: NewSummaryRenderer(o), opts: analysisOptions(o)}
	},
}

// New returns the reporter for opts.Format, writing to stdout when no
// writer is set. An empty format means text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	construct, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return construct(opts), nil
}

// analyzed adapts a Renderer: it aggregates the run, then renders it.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = (*analyzed)(nil)

func (a *analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func analysisOptions(opts Options) analysis.Options {
	aopts := analysis.DefaultOptions()
	aopts.RuleFormat = opts.RuleFormat
	aopts.WorkingDir = opts.WorkingDir
	if opts.SortBy.IsValid() {
		aopts.SortBy = opts.SortBy
	}
	return aopts
}

// buffered runs write against a buffer over w and flushes it. A write
// error takes precedence over a flush error.
func buffered(w io.Writer, write func(w io.Writer) (int, error)) (int, error) {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	n, err := write(bw)
	if flushErr := bw.Flush(); err == nil {
		err = flushErr
	}
	return n, err
}

// displayPath makes an absolute path relative to workDir when it lies
// below it.
func displayPath(workDir, path string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
