package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gertd/go-pluralize"

	"github.com/yaklabco/gradlint/internal/ui/pretty"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/runner"
)

// DiffReporter prints the pending changes of a dry run as unified diffs,
// followed by a git-style stat line.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	plural *pluralize.Client
}

func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		plural: pluralize.NewClient(),
	}
}

// diffStat totals the diffs written.
type diffStat struct {
	files, additions, deletions int
}

func (s *diffStat) add(d *fix.Diff) {
	s.files++
	s.additions += d.Additions
	s.deletions += d.Deletions
}

// Report returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}
	return buffered(r.opts.Writer, func(w io.Writer) (int, error) {
		var stat diffStat
		for _, file := range result.Files {
			switch {
			case file.Error != nil:
				writeNote(w, r.styles, displayPath(r.opts.WorkingDir, file.Path),
					fmt.Sprintf("error: %v", file.Error), r.styles.Error)
			case file.Result != nil:
				for _, d := range file.Result.Diffs {
					if !d.HasChanges() {
						continue
					}
					stat.add(d)
					shown := *d
					shown.Path = displayPath(r.opts.WorkingDir, d.Path)
					fmt.Fprintln(w, r.styles.FormatDiff(&shown))
				}
			}
		}
		if stat.files > 0 && r.opts.ShowSummary {
			r.writeStat(w, stat)
		}
		return stat.files, nil
	})
}

func (r *DiffReporter) writeStat(w io.Writer, stat diffStat) {
	parts := []string{r.plural.Pluralize("file", stat.files, true) + " changed"}
	if stat.additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(r.plural.Pluralize("insertion", stat.additions, true)+"(+)"))
	}
	if stat.deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(r.plural.Pluralize("deletion", stat.deletions, true)+"(-)"))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
