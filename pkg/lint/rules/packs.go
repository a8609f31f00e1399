package rules

import (
	"maps"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/config"
)

// Pack is a named set of rules-map entries that "gradlint init --pack"
// writes out as a starting config.
type Pack struct {
	Name        string
	Description string
	Rules       map[string]config.RuleConfig // keyed by rule ID
}

// CorePack returns the core pack: everyday build hygiene as warnings.
func CorePack() Pack {
	return Pack{
		Name:        "core",
		Description: "Everyday build hygiene: duplicates, dynamic versions, whitespace",
		Rules: map[string]config.RuleConfig{
			"GL001": enabled("warning"), // deprecated-configuration
			"GL002": enabled("error"),   // duplicate-dependency
			"GL006": enabled("warning"), // line-endings
			"GL009": enabled("warning"), // dynamic-version
			"GL010": enabled("info"),    // trailing-whitespace
		},
	}
}

// StrictPack returns the strict pack with every rule enabled as an error.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every rule as an error, required-plugin included",
		Rules: map[string]config.RuleConfig{
			"GL001": enabled("error"), // deprecated-configuration
			"GL002": enabled("error"), // duplicate-dependency
			"GL003": enabled("error"), // dependency-tuple
			"GL004": enabled("error"), // required-plugin
			"GL005": enabled("error"), // repositories-before-dependencies
			"GL006": enabled("error"), // line-endings
			"GL007": enabled("error"), // empty-build-file
			"GL008": enabled("error"), // missing-settings-file
			"GL009": enabled("error"), // dynamic-version
			"GL010": enabled("error"), // trailing-whitespace
		},
	}
}

// MigrationPack returns the rules that move a build to Gradle 7 idioms,
// with everything else switched off.
func MigrationPack() Pack {
	return Pack{
		Name:        "migration",
		Description: "Migration pack: only the Gradle 7 configuration and notation rewrites",
		Rules: map[string]config.RuleConfig{
			"GL001": enabled("error"),   // deprecated-configuration
			"GL003": enabled("warning"), // dependency-tuple
			"GL002": disabled(),         // duplicate-dependency
			"GL005": disabled(),         // repositories-before-dependencies
			"GL007": disabled(),         // empty-build-file
			"GL008": disabled(),         // missing-settings-file
			"GL009": disabled(),         // dynamic-version
			"GL010": disabled(),         // trailing-whitespace
		},
	}
}

// Packs returns the built-in packs in display order.
func Packs() []Pack {
	return []Pack{CorePack(), StrictPack(), MigrationPack()}
}

// PackByName returns the named pack, or nil.
func PackByName(name string) *Pack {
	pack, ok := lo.Find(Packs(), func(p Pack) bool { return p.Name == name })
	if !ok {
		return nil
	}
	return &pack
}

func PackNames() []string {
	return lo.Map(Packs(), func(p Pack, _ int) string { return p.Name })
}

// Apply merges the pack into cfg.Rules. Entries already present win.
func (p Pack) Apply(cfg *config.Config) {
	merged := maps.Clone(p.Rules)
	maps.Copy(merged, cfg.Rules)
	cfg.Rules = merged
}

func enabled(severity string) config.RuleConfig {
	return config.RuleConfig{Enabled: lo.ToPtr(true), Severity: lo.ToPtr(severity)}
}

func disabled() config.RuleConfig {
	return config.RuleConfig{Enabled: lo.ToPtr(false)}
}
