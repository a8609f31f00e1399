package rules

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
)

var updateGolden = flag.Bool("update", false, "update golden files")

// TestGoldenRealWorld lints each testdata/real-world/<name>.input.<ext>
// script with the default rules. The diagnostics of the first pass are
// compared with <name>.diags.txt and the fully fixed script with
// <name>.golden.<ext>. Run with -update to rewrite both.
func TestGoldenRealWorld(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "real-world", "*.input.*"))
	require.NoError(t, err)
	require.NotEmpty(t, inputs, "no golden inputs found")

	for _, input := range inputs {
		dir, base := filepath.Split(input)
		stem, ext, _ := strings.Cut(base, ".input.")

		t.Run(stem, func(t *testing.T) {
			content, err := os.ReadFile(input)
			require.NoError(t, err)

			pipeline := lint.NewPipeline(lint.NewEngine(lint.NewScriptParser(), lint.DefaultRegistry))
			opts := lint.DefaultPipelineOptions()

			linted, err := pipeline.ProcessContent(context.Background(), input, content, config.NewConfig(), opts)
			require.NoError(t, err)

			fixCfg := config.NewConfig()
			fixCfg.Fix = true
			opts.Fix = true
			fixed, err := pipeline.ProcessContent(context.Background(), input, content, fixCfg, opts)
			require.NoError(t, err)

			got := content
			if fixed.Modified {
				got = fixed.ModifiedContent
			}

			diagsPath := filepath.Join(dir, stem+".diags.txt")
			goldenPath := filepath.Join(dir, stem+".golden."+ext)
			diags := renderViolations(base, linted.Violations)

			if *updateGolden {
				require.NoError(t, os.WriteFile(diagsPath, []byte(diags), 0o644))
				require.NoError(t, os.WriteFile(goldenPath, got, 0o644))
				return
			}

			wantDiags, err := os.ReadFile(diagsPath)
			require.NoError(t, err)
			assert.Equal(t, string(wantDiags), diags)

			wantFixed, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.Equal(t, string(wantFixed), string(got))

			// A fixed script is stable under another fix run.
			again, err := pipeline.ProcessContent(context.Background(), input, got, fixCfg, opts)
			require.NoError(t, err)
			assert.False(t, again.Modified, "golden output should have nothing left to fix")
		})
	}
}

// renderViolations prints one violation per line, ordered by position and
// rule ID.
func renderViolations(name string, violations []lint.Violation) string {
	sorted := slices.Clone(violations)
	slices.SortStableFunc(sorted, func(a, b lint.Violation) int {
		if a.StartLine != b.StartLine {
			return a.StartLine - b.StartLine
		}
		if a.StartColumn != b.StartColumn {
			return a.StartColumn - b.StartColumn
		}
		return strings.Compare(a.RuleID, b.RuleID)
	})

	var sb strings.Builder
	for _, v := range sorted {
		fmt.Fprintf(&sb, "%s:%d:%d %s %s %s (%s)", name, v.StartLine, v.StartColumn,
			v.RuleID, v.Severity, v.Message, v.RuleName)
		if v.HasFix() {
			sb.WriteString(" [fixable]")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
