package configloader

import (
	"maps"

	"github.com/yaklabco/gradlint/pkg/config"
)

// set overwrites *dst with v unless v is the zero value. For booleans this
// means a later layer can switch an option on but never off.
func set[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// setNonNil overwrites *dst when v is set, so an explicit false or an
// empty severity in a later layer still wins.
func setNonNil[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

// setSlice overwrites *dst when v is non-nil; an explicitly empty list
// replaces the layer below.
func setSlice(dst *[]string, v []string) {
	if v != nil {
		*dst = v
	}
}

// merge layers override on top of base and returns a new Config. Neither
// argument is modified.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := *base
	set(&out.SeverityDefault, override.SeverityDefault)
	set(&out.Format, override.Format)
	set(&out.RuleFormat, override.RuleFormat)
	set(&out.Jobs, override.Jobs)
	set(&out.MaxFixPasses, override.MaxFixPasses)
	set(&out.Fix, override.Fix)
	set(&out.DryRun, override.DryRun)
	set(&out.NoBackups, override.NoBackups)
	set(&out.Backups.Mode, override.Backups.Mode)
	set(&out.Backups.Enabled, override.Backups.Enabled)

	setSlice(&out.Ignore, override.Ignore)
	setSlice(&out.EnableRules, override.EnableRules)
	setSlice(&out.DisableRules, override.DisableRules)
	setSlice(&out.FixRules, override.FixRules)

	out.Rules = mergeRules(base.Rules, override.Rules)
	return &out
}

// mergeRules merges per-rule settings key by key.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]config.RuleConfig, len(override))
	}
	for key, rc := range override {
		out[key] = mergeRule(out[key], rc)
	}
	return out
}

// mergeRule layers override on base field by field. Options are merged
// one level deep.
func mergeRule(base, override config.RuleConfig) config.RuleConfig {
	out := base
	setNonNil(&out.Enabled, override.Enabled)
	setNonNil(&out.Severity, override.Severity)
	setNonNil(&out.AutoFix, override.AutoFix)

	if override.Options != nil {
		out.Options = make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(out.Options, base.Options)
		maps.Copy(out.Options, override.Options)
	}
	return out
}
