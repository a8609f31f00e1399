package reporter

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/config"
)

// Format names an output format. It is the configuration type, so a
// configured format needs no conversion.
type Format = config.OutputFormat

const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatSARIF   = config.FormatSARIF
	FormatDiff    = config.FormatDiff
	FormatSummary = config.FormatSummary
)

// Formats lists the formats in the order help text shows them.
func Formats() []Format { return config.OutputFormats() }

// FormatNames is Formats joined for help and error text.
func FormatNames() string {
	return strings.Join(lo.Map(Formats(), func(f Format, _ int) string { return string(f) }), ", ")
}

// ParseFormat validates a --format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", s, FormatNames())
}
