package lint_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
)

type stubRule struct {
	lint.BaseRule
}

func (*stubRule) Apply(*lint.RuleContext) ([]lint.Violation, error) { return nil, nil }

// resolveRegistry holds GL001 (fixable, name "alpha") and GL002 (fixable,
// name "beta").
func resolveRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	registry.Register(&stubRule{lint.NewBaseRule("GL001", "alpha", "", nil, true)})
	registry.Register(&stubRule{lint.NewBaseRule("GL002", "beta", "", nil, true)})
	return registry
}

// summary is a compact view of one resolved rule.
type summary struct {
	Severity config.Severity
	AutoFix  bool
}

func summarize(resolved []lint.ResolvedRule) map[string]summary {
	return lo.SliceToMap(resolved, func(rr lint.ResolvedRule) (string, summary) {
		return rr.Rule.ID(), summary{Severity: rr.Severity, AutoFix: rr.AutoFix}
	})
}

func TestResolveRules(t *testing.T) {
	t.Parallel()

	warn := config.SeverityWarning
	tests := map[string]struct {
		configure func(cfg *config.Config)
		want      map[string]summary
	}{
		"defaults without fix": {
			want: map[string]summary{"GL001": {Severity: warn}, "GL002": {Severity: warn}},
		},
		"fix switch enables autofix": {
			configure: func(cfg *config.Config) { cfg.Fix = true },
			want: map[string]summary{
				"GL001": {Severity: warn, AutoFix: true},
				"GL002": {Severity: warn, AutoFix: true},
			},
		},
		"disable list by id": {
			configure: func(cfg *config.Config) { cfg.DisableRules = []string{"GL001"} },
			want:      map[string]summary{"GL002": {Severity: warn}},
		},
		"disable list by name": {
			configure: func(cfg *config.Config) { cfg.DisableRules = []string{"beta"} },
			want:      map[string]summary{"GL001": {Severity: warn}},
		},
		"rules map overrides disable list": {
			configure: func(cfg *config.Config) {
				cfg.DisableRules = []string{"GL001"}
				cfg.Rules["GL001"] = config.RuleConfig{Enabled: lo.ToPtr(true)}
			},
			want: map[string]summary{"GL001": {Severity: warn}, "GL002": {Severity: warn}},
		},
		"rules map disables": {
			configure: func(cfg *config.Config) {
				cfg.Rules["GL002"] = config.RuleConfig{Enabled: lo.ToPtr(false)}
			},
			want: map[string]summary{"GL001": {Severity: warn}},
		},
		"severity from name key": {
			configure: func(cfg *config.Config) {
				cfg.Rules["alpha"] = config.RuleConfig{Severity: lo.ToPtr("error")}
			},
			want: map[string]summary{"GL001": {Severity: config.SeverityError}, "GL002": {Severity: warn}},
		},
		"id key wins over name key": {
			configure: func(cfg *config.Config) {
				cfg.Rules["GL001"] = config.RuleConfig{Severity: lo.ToPtr("error")}
				cfg.Rules["alpha"] = config.RuleConfig{Severity: lo.ToPtr("info")}
			},
			want: map[string]summary{"GL001": {Severity: config.SeverityError}, "GL002": {Severity: warn}},
		},
		"autofix off in rules map": {
			configure: func(cfg *config.Config) {
				cfg.Fix = true
				cfg.Rules["GL001"] = config.RuleConfig{AutoFix: lo.ToPtr(false)}
			},
			want: map[string]summary{
				"GL001": {Severity: warn},
				"GL002": {Severity: warn, AutoFix: true},
			},
		},
		"fix rules filter by name": {
			configure: func(cfg *config.Config) {
				cfg.Fix = true
				cfg.FixRules = []string{"beta"}
			},
			want: map[string]summary{
				"GL001": {Severity: warn},
				"GL002": {Severity: warn, AutoFix: true},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			if tt.configure != nil {
				tt.configure(cfg)
			}
			assert.Equal(t, tt.want, summarize(lint.ResolveRules(resolveRegistry(), cfg)))
		})
	}
}

func TestResolveRules_IDOrder(t *testing.T) {
	t.Parallel()

	resolved := lint.ResolveRules(resolveRegistry(), config.NewConfig())

	ids := lo.Map(resolved, func(rr lint.ResolvedRule, _ int) string { return rr.Rule.ID() })
	assert.Equal(t, []string{"GL001", "GL002"}, ids)
}

func TestResolveRules_NilConfig(t *testing.T) {
	t.Parallel()

	resolved := lint.ResolveRules(resolveRegistry(), nil)

	require.Len(t, resolved, 2)
	assert.False(t, resolved[0].AutoFix)
	assert.Nil(t, resolved[0].Config)
}

func TestResolveRules_KeepsRuleConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["GL001"] = config.RuleConfig{Options: map[string]any{"plugins": []string{"idea"}}}

	resolved := lint.ResolveRules(resolveRegistry(), cfg)

	require.NotNil(t, resolved[0].Config)
	assert.Equal(t, []string{"idea"}, resolved[0].Config.Options["plugins"])
}
