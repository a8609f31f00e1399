package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/script"
)

// ruleRun is the outcome of applying one rule to a script.
type ruleRun struct {
	ctx        *lint.RuleContext
	violations []lint.Violation
	fixed      string
}

// runRule applies rule to input, applies the conflict-free text fixes, and
// checks that a second run over the fixed text has nothing left to fix.
func runRule(t *testing.T, rule lint.Rule, path, input string, options map[string]any) ruleRun {
	t.Helper()

	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}

	apply := func(content string) (*lint.RuleContext, []lint.Violation) {
		doc := script.Parse(path, []byte(content))
		ctx := lint.NewRuleContext(context.Background(), doc, config.NewConfig(), ruleCfg)
		violations, err := rule.Apply(ctx)
		require.NoError(t, err)
		return ctx, violations
	}

	ctx, violations := apply(input)

	var fixes []fix.Fix
	for _, v := range violations {
		if v.Fix != nil && v.Fix.IsTextual() {
			fixes = append(fixes, *v.Fix)
		}
	}
	if len(fixes) == 0 {
		return ruleRun{ctx: ctx, violations: violations, fixed: input}
	}

	accepted, conflicts := fix.Resolve(fixes)
	require.Empty(t, conflicts, "a single rule should not produce conflicting fixes")

	fixed, err := fix.Apply([]byte(input), accepted)
	require.NoError(t, err)

	_, again := apply(string(fixed))
	for _, v := range again {
		assert.False(t, v.HasFix(), "fix should be idempotent, got %q on line %d", v.Message, v.StartLine)
	}

	return ruleRun{ctx: ctx, violations: violations, fixed: string(fixed)}
}

// lines returns the start line of each violation, nil when there are none.
func lines(violations []lint.Violation) []int {
	var out []int
	for _, v := range violations {
		out = append(out, v.StartLine)
	}
	return out
}
