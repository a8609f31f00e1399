package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/config"
)

func TestTotals_Predicates(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		totals     Totals
		wantIssues bool
		wantErrors bool
	}{
		"clean":         {},
		"warnings only": {totals: Totals{Issues: 5, SeverityCounts: SeverityCounts{Warnings: 5}}, wantIssues: true},
		"errors":        {totals: Totals{Issues: 3, SeverityCounts: SeverityCounts{Errors: 3}}, wantIssues: true, wantErrors: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantIssues, tt.totals.HasIssues())
			assert.Equal(t, tt.wantErrors, tt.totals.HasErrors())
		})
	}
}

func TestSeverityCounts_FlattenedInJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(FileAnalysis{
		Path:           "build.gradle",
		Issues:         2,
		SeverityCounts: SeverityCounts{Errors: 1, Infos: 1},
	})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.InDelta(t, 1, fields["errors"], 0)
	assert.InDelta(t, 0, fields["warnings"], 0)
	assert.InDelta(t, 1, fields["infos"], 0)
	assert.NotContains(t, fields, "SeverityCounts")
}

func TestSeverityCounts_IgnoresUnknown(t *testing.T) {
	t.Parallel()

	var counts SeverityCounts
	counts.add(severityError)
	counts.add("fatal")
	counts.add(severityInfo)

	assert.Equal(t, SeverityCounts{Errors: 1, Infos: 1}, counts)
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	assert.True(t, opts.IncludeViolations)
	assert.True(t, opts.IncludeByFile)
	assert.True(t, opts.IncludeByRule)
	assert.Equal(t, SortByCount, opts.SortBy)
	assert.True(t, opts.SortDesc)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    SortField
		wantErr bool
	}{
		{in: "", want: SortByCount},
		{in: "count", want: SortByCount},
		{in: "alpha", want: SortByAlpha},
		{in: "severity", want: SortBySeverity},
		{in: "size", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSortField(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "count, alpha, severity")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.IsValid())
		})
	}
}
