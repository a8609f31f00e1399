package pretty

import (
	"strings"

	"github.com/yaklabco/gradlint/pkg/fix"
)

// FormatDiff renders a unified diff with git-style headers, colouring added,
// removed and context lines.
func (s *Styles) FormatDiff(d *fix.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	line := func(style func(...string) string, text string) {
		builder.WriteString(style(text))
		builder.WriteByte('\n')
	}

	for _, header := range strings.Split(d.GitHeader(), "\n") {
		line(s.DiffHeader.Render, header)
	}
	line(s.DiffHeader.Render, "--- "+d.OldName())
	line(s.DiffHeader.Render, "+++ "+d.NewName())

	for _, hunk := range d.Hunks {
		line(s.DiffHunk.Render, hunk.Header())
		for _, dl := range hunk.Lines {
			switch dl.Kind {
			case fix.DiffLineAdd:
				line(s.DiffAdd.Render, "+"+dl.Content)
			case fix.DiffLineRemove:
				line(s.DiffRemove.Render, "-"+dl.Content)
			default:
				line(s.DiffContext.Render, " "+dl.Content)
			}
			if dl.NoNewline {
				line(s.Dim.Render, fix.NoNewlineMarker)
			}
		}
	}

	return builder.String()
}
