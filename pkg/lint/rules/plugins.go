package rules

import (
	"fmt"

	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/script"
)

// RequiredPluginRule flags projects that apply an anchor plugin (java by
// default) without the companion plugins a team requires alongside it.
type RequiredPluginRule struct {
	lint.BaseRule
}

// NewRequiredPluginRule creates a new required plugin rule.
func NewRequiredPluginRule() *RequiredPluginRule {
	return &RequiredPluginRule{
		BaseRule: lint.NewBaseRule(
			"GL004",
			"required-plugin",
			"Projects applying the anchor plugin should also apply the required plugins",
			[]string{"plugins"},
			true,
		),
	}
}

// DefaultEnabled returns false; the required plugin list is a team policy.
func (r *RequiredPluginRule) DefaultEnabled() bool {
	return false
}

// Apply inserts each missing plugin right after the anchor plugin.
//
// Options:
//   - after: anchor plugin id (default "java")
//   - plugins: plugin ids to require (default ["nebula.source-jar"])
func (r *RequiredPluginRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	anchor := ctx.OptionString("after", "java")
	required := ctx.OptionStringSlice("plugins", []string{"nebula.source-jar"})

	lineNum, ok := pluginLine(ctx, anchor)
	if !ok {
		return nil, nil
	}
	line, _ := ctx.Doc.Line(lineNum)
	applied, ok := script.ParsePlugin(line.Code)
	if !ok {
		return nil, nil
	}

	dialect := dialectOf(ctx.Doc)
	indent := indentOf(line.Text)

	var violations []lint.Violation
	for _, id := range required {
		if _, present := pluginLine(ctx, id); present {
			continue
		}

		stmt := indent + pluginStatement(applied.Style, dialect, id)
		v := lint.NewViolationAt(r.ID(), ctx.Doc.Path, lint.SpanPosition(lineNum, applied.IDSpan),
			fmt.Sprintf("Plugin '%s' is required alongside '%s'", id, anchor)).
			WithSuggestion("Add " + stmt).
			WithFix(fix.InsertAfter(ctx.File, lineNum, stmt)).
			Build()
		violations = append(violations, v)
	}

	return violations, nil
}

// pluginStatement renders a plugin declaration in the style of the anchor.
func pluginStatement(style script.PluginStyle, dialect script.Dialect, id string) string {
	quoted := dialect.Quote(id)
	switch {
	case style == script.PluginStyleBlock && dialect == script.DialectKotlin:
		return "id(" + quoted + ")"
	case style == script.PluginStyleBlock:
		return "id " + quoted
	case dialect == script.DialectKotlin:
		return "apply(plugin = " + quoted + ")"
	default:
		return "apply plugin: " + quoted
	}
}
