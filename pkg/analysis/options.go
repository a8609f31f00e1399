package analysis

import (
	"fmt"

	"github.com/yaklabco/gradlint/pkg/config"
)

// SortField orders the ByFile and ByRule views.
type SortField string

const (
	// SortByCount puts the rows with the most issues first unless SortDesc
	// is false. Ties fall back to the row name.
	SortByCount SortField = "count"
	// SortByAlpha orders rows by path or rule ID, ascending.
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts rows with more errors, then more warnings, first.
	SortBySeverity SortField = "severity"
)

func (s SortField) IsValid() bool {
	return s == SortByCount || s == SortByAlpha || s == SortBySeverity
}

// ParseSortField validates a --sort value. Empty selects SortByCount.
func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortByCount, nil
	}
	field := SortField(s)
	if !field.IsValid() {
		return "", fmt.Errorf("unknown sort %q; valid values: count, alpha, severity", s)
	}
	return field, nil
}

// Options selects the views Analyze computes and how they are ordered.
// Totals are always computed.
type Options struct {
	IncludeViolations bool
	IncludeByFile     bool
	IncludeByRule     bool

	SortBy   SortField
	SortDesc bool

	RuleFormat config.RuleFormat

	// WorkingDir makes paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions computes every view, most frequent first.
func DefaultOptions() Options {
	return Options{
		IncludeViolations: true,
		IncludeByFile:     true,
		IncludeByRule:     true,
		SortBy:            SortByCount,
		SortDesc:          true,
		RuleFormat:        config.RuleFormatName,
	}
}
