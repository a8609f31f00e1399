package configloader

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
)

// ValidationError is one problem found in a configuration. Field is a
// dotted path such as "rules.GL001.severity".
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string // empty for the merged configuration
}

func (e *ValidationError) Error() string {
	parts := lo.Compact([]string{e.FilePath, e.Field})
	return strings.Join(append(parts, e.Message), ": ")
}

// ValidationResult separates fatal errors from warnings. Unknown keys in
// the rules map only warn, so a config can name rules a newer release adds.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// Err joins every error, or returns nil when the configuration is valid.
func (r *ValidationResult) Err() error {
	return errors.Join(lo.Map(r.Errors, func(e ValidationError, _ int) error { return &e })...)
}

// AllMessages prefixes each finding with its class, errors first.
func (r *ValidationResult) AllMessages() []string {
	prefixed := func(prefix string) func(ValidationError, int) string {
		return func(e ValidationError, _ int) string { return prefix + e.Error() }
	}
	return append(lo.Map(r.Errors, prefixed("error: ")), lo.Map(r.Warnings, prefixed("warning: "))...)
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// oneOf fails field unless value is empty or listed in valid.
func oneOf[T ~string](r *ValidationResult, field, what string, value T, valid []T) {
	if value == "" || slices.Contains(valid, value) {
		return
	}
	names := lo.Map(valid, func(v T, _ int) string { return string(v) })
	r.fail(field, value, "invalid %s %q; must be one of: %s", what, value, strings.Join(names, ", "))
}

// Validate checks cfg. Rule references are looked up in registry by ID or
// name; with a nil registry they are not checked.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	r := &ValidationResult{}
	if cfg == nil {
		return r
	}

	oneOf(r, "severity_default", "severity", config.Severity(cfg.SeverityDefault), config.Severities())
	oneOf(r, "format", "format", cfg.Format, config.OutputFormats())
	oneOf(r, "rule_format", "rule format", cfg.RuleFormat, config.RuleFormats())
	oneOf(r, "backups.mode", "backup mode", cfg.Backups.Mode, config.BackupModes())

	if cfg.Jobs < 0 {
		r.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}
	if cfg.MaxFixPasses < 0 {
		r.fail("max_fix_passes", cfg.MaxFixPasses, "max_fix_passes must be >= 0 (0 means default)")
	}

	known := func(key string) bool {
		if registry == nil {
			return true
		}
		_, ok := registry.Get(key)
		return ok
	}

	for _, key := range slices.Sorted(maps.Keys(cfg.Rules)) {
		field := "rules." + key
		if !known(key) {
			r.warn(field, key, "unknown rule %q; it will be ignored", key)
		}
		if sev := cfg.Rules[key].Severity; sev != nil {
			oneOf(r, field+".severity", "severity", config.Severity(*sev), config.Severities())
		}
	}

	lists := []struct {
		field string
		keys  []string
	}{
		{"enable", cfg.EnableRules},
		{"disable", cfg.DisableRules},
		{"fix_rules", cfg.FixRules},
	}
	for _, list := range lists {
		for _, key := range list.keys {
			if !known(key) {
				r.fail(list.field, key, "unknown rule %q", key)
			}
		}
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			r.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern %q", pattern)
		}
	}
	return r
}

// ValidateWithFile validates cfg and stamps every finding with filePath.
func ValidateWithFile(cfg *config.Config, filePath string, registry *lint.Registry) *ValidationResult {
	r := Validate(cfg, registry)
	for _, findings := range [][]ValidationError{r.Errors, r.Warnings} {
		for i := range findings {
			findings[i].FilePath = filePath
		}
	}
	return r
}
