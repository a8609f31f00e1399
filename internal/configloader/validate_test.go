package configloader

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/lint/rules"
)

func builtinRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	rules.RegisterAll(registry)
	return registry
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		configure  func(cfg *config.Config)
		wantFields []string
		wantMsg    string
	}{
		"defaults are valid": {},
		"bad default severity": {
			configure:  func(cfg *config.Config) { cfg.SeverityDefault = "fatal" },
			wantFields: []string{"severity_default"},
			wantMsg:    `invalid severity "fatal"; must be one of: error, warning, info`,
		},
		"bad format": {
			configure:  func(cfg *config.Config) { cfg.Format = "table" },
			wantFields: []string{"format"},
			wantMsg:    `invalid format "table"; must be one of: text, json, sarif, diff, summary`,
		},
		"bad rule format": {
			configure:  func(cfg *config.Config) { cfg.RuleFormat = "short" },
			wantFields: []string{"rule_format"},
		},
		"bad backup mode": {
			configure:  func(cfg *config.Config) { cfg.Backups.Mode = "cloud" },
			wantFields: []string{"backups.mode"},
		},
		"negative numbers": {
			configure: func(cfg *config.Config) {
				cfg.Jobs = -1
				cfg.MaxFixPasses = -2
			},
			wantFields: []string{"jobs", "max_fix_passes"},
		},
		"bad rule severity": {
			configure: func(cfg *config.Config) {
				cfg.Rules["GL001"] = config.RuleConfig{Severity: lo.ToPtr("loud")}
			},
			wantFields: []string{"rules.GL001.severity"},
		},
		"unknown rule lists": {
			configure: func(cfg *config.Config) {
				cfg.EnableRules = []string{"GL001", "nope"}
				cfg.DisableRules = []string{"dynamic-version"}
				cfg.FixRules = []string{"GL999"}
			},
			wantFields: []string{"enable", "fix_rules"},
		},
		"bad ignore glob": {
			configure:  func(cfg *config.Config) { cfg.Ignore = []string{"ok/**", "bad/["} },
			wantFields: []string{"ignore[1]"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			if tt.configure != nil {
				tt.configure(cfg)
			}

			result := Validate(cfg, builtinRegistry())

			fields := lo.Map(result.Errors, func(e ValidationError, _ int) string { return e.Field })
			if len(tt.wantFields) == 0 {
				assert.Empty(t, fields)
				assert.True(t, result.Valid())
				assert.NoError(t, result.Err())
				return
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.False(t, result.Valid())
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, result.Errors[0].Message)
			}
		})
	}
}

func TestValidate_UnknownRuleKeyWarns(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["no-such-rule"] = config.RuleConfig{Enabled: lo.ToPtr(false)}
	cfg.Rules["trailing-whitespace"] = config.RuleConfig{Enabled: lo.ToPtr(false)}

	result := Validate(cfg, builtinRegistry())

	assert.True(t, result.Valid())
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "rules.no-such-rule", result.Warnings[0].Field)
}

func TestValidate_NilRegistrySkipsRuleChecks(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.EnableRules = []string{"anything"}
	cfg.Rules["anything"] = config.RuleConfig{}

	result := Validate(cfg, nil)

	assert.True(t, result.Valid())
	assert.Empty(t, result.Warnings)
}

func TestValidateWithFile(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.SeverityDefault = "fatal"
	cfg.Rules["mystery"] = config.RuleConfig{}

	result := ValidateWithFile(cfg, "/repo/.gradlint.yml", builtinRegistry())

	require.Len(t, result.Errors, 1)
	assert.Equal(t, `/repo/.gradlint.yml: severity_default: invalid severity "fatal"; must be one of: error, warning, info`,
		result.Errors[0].Error())
	assert.Equal(t, "/repo/.gradlint.yml", result.Warnings[0].FilePath)

	var verr *ValidationError
	require.ErrorAs(t, result.Err(), &verr)
	assert.Equal(t, "severity_default", verr.Field)

	assert.Equal(t, []string{
		`error: /repo/.gradlint.yml: severity_default: invalid severity "fatal"; must be one of: error, warning, info`,
		`warning: /repo/.gradlint.yml: rules.mystery: unknown rule "mystery"; it will be ignored`,
	}, result.AllMessages())
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Message: "bad"}
	assert.Equal(t, "bad", err.Error())
}
