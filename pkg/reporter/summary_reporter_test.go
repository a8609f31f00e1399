package reporter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/reporter"
	"github.com/yaklabco/gradlint/pkg/runner"
)

func TestSummaryReporter_ReturnsIssueCount(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer: &buf,
		Format: reporter.FormatSummary,
		Color:  "never",
	})
	require.NoError(t, err)

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "build.gradle",
				Result: &lint.PipelineResult{
					FileResult: &lint.FileResult{
						Violations: []lint.Violation{
							{RuleID: "GL002", Severity: config.SeverityError},
							{RuleID: "GL010", Severity: config.SeverityWarning},
						},
					},
				},
			},
		},
	}

	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Contains(t, buf.String(), "By rule")
}

func TestFormats_AllConstructible(t *testing.T) {
	t.Parallel()

	for _, format := range reporter.Formats() {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format, Color: "never"})
		require.NoError(t, err, format)
		assert.NotNil(t, rep, format)
	}

	_, err := reporter.ParseFormat("xml")
	require.ErrorContains(t, err, "valid formats: text, json, sarif, diff, summary")
}
