package lint

import (
	"github.com/hashicorp/go-set/v2"
	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/config"
)

// ResolvedRule is a rule with its effective settings for one run.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity
	AutoFix  bool
	Config   *config.RuleConfig // rules-map entry, nil when absent
}

// ResolveRules returns the enabled rules in ID order with their effective
// settings. Precedence, lowest first: rule defaults, the enable list, the
// disable list, the rules map, the fix-rules filter, and finally the global
// fix switch. Every rule reference may be an ID or a name.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	lists := canonicalLists(registry, cfg)
	return lo.FilterMap(registry.Rules(), func(rule Rule, _ int) (ResolvedRule, bool) {
		rr := resolveRule(rule, cfg, lists)
		return rr, rr.Enabled
	})
}

// ruleLists are the CLI rule lists with names mapped to IDs.
type ruleLists struct {
	enable, disable, fix *set.Set[string]
}

func canonicalLists(registry *Registry, cfg *config.Config) ruleLists {
	ids := func(keys []string) *set.Set[string] {
		s := set.New[string](len(keys))
		for _, key := range keys {
			if id, ok := registry.Resolve(key); ok {
				key = id
			}
			s.Insert(key)
		}
		return s
	}
	if cfg == nil {
		return ruleLists{enable: ids(nil), disable: ids(nil), fix: ids(nil)}
	}
	return ruleLists{
		enable:  ids(cfg.EnableRules),
		disable: ids(cfg.DisableRules),
		fix:     ids(cfg.FixRules),
	}
}

// ruleEntry finds the rules-map entry for rule. An ID key wins over a name
// key.
func ruleEntry(rule Rule, cfg *config.Config) (config.RuleConfig, bool) {
	if rc, ok := cfg.Rules[rule.ID()]; ok {
		return rc, true
	}
	rc, ok := cfg.Rules[rule.Name()]
	return rc, ok
}

func resolveRule(rule Rule, cfg *config.Config, lists ruleLists) ResolvedRule {
	id := rule.ID()
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}
	if cfg == nil {
		return rr
	}

	rr.AutoFix = rule.CanFix()
	switch {
	case lists.disable.Contains(id):
		rr.Enabled = false
	case lists.enable.Contains(id):
		rr.Enabled = true
	}

	if entry, ok := ruleEntry(rule, cfg); ok {
		rr.Config = &entry
		if entry.Enabled != nil {
			rr.Enabled = *entry.Enabled
		}
		if entry.Severity != nil {
			rr.Severity = config.Severity(*entry.Severity)
		}
		if entry.AutoFix != nil {
			rr.AutoFix = rr.AutoFix && *entry.AutoFix
		}
	}

	if !lists.fix.Empty() && !lists.fix.Contains(id) {
		rr.AutoFix = false
	}
	rr.AutoFix = rr.AutoFix && cfg.Fix
	return rr
}
