package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/gradlint/pkg/analysis"
	"github.com/yaklabco/gradlint/pkg/config"
)

const bufWriterSize = 64 * 1024

// SummaryOrder selects the table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// ParseSummaryOrder validates a --summary-order value. Empty means rules.
func ParseSummaryOrder(s string) (SummaryOrder, error) {
	switch order := SummaryOrder(s); order {
	case "":
		return SummaryOrderRules, nil
	case SummaryOrderRules, SummaryOrderFiles:
		return order, nil
	}
	return "", fmt.Errorf("unknown summary order %q; valid values: rules, files", s)
}

// Options configures every reporter. Fields a format has no use for are
// ignored by it.
type Options struct {
	Writer      io.Writer
	ErrorWriter io.Writer
	Format      Format

	// Color is "auto", "always" or "never".
	Color       string
	ShowContext bool
	ShowSummary bool
	GroupByFile bool
	Compact     bool
	RuleFormat  config.RuleFormat

	// SummaryOrder and SortBy shape the summary tables.
	SummaryOrder SummaryOrder
	SortBy       analysis.SortField

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string

	// Rules and ToolVersion populate the SARIF tool descriptor.
	Rules       []config.RuleInfo
	ToolVersion string
}

// DefaultOptions returns the options the lint command starts from.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: SummaryOrderRules,
		SortBy:       analysis.SortByCount,
		ToolVersion:  "dev",
	}
}
