package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/script"
)

// deprecatedConfigurations maps configurations removed in Gradle 7 to their
// replacements.
var deprecatedConfigurations = map[string]string{
	"compile":     "implementation",
	"testCompile": "testImplementation",
	"runtime":     "runtimeOnly",
	"testRuntime": "testRuntimeOnly",
}

// DeprecatedConfigurationRule flags dependencies declared in configurations
// that Gradle no longer supports.
type DeprecatedConfigurationRule struct {
	lint.BaseRule
}

// NewDeprecatedConfigurationRule creates a new deprecated configuration rule.
func NewDeprecatedConfigurationRule() *DeprecatedConfigurationRule {
	return &DeprecatedConfigurationRule{
		BaseRule: lint.NewBaseRule(
			"GL001",
			"deprecated-configuration",
			"Dependencies should not use removed configurations such as compile or runtime",
			[]string{"dependencies", "migration"},
			true,
		),
	}
}

// Apply checks the configuration of each dependency.
func (r *DeprecatedConfigurationRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation

	for _, dep := range ctx.Doc.Dependencies() {
		if ctx.Cancelled() {
			return violations, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		replacement, ok := deprecatedConfigurations[dep.Configuration]
		if !ok {
			continue
		}

		span := dep.ConfigurationSpan
		v := lint.NewViolationAt(r.ID(), ctx.Doc.Path, lint.SpanPosition(dep.Line, span),
			fmt.Sprintf("Configuration '%s' is deprecated", dep.Configuration)).
			WithSuggestion(fmt.Sprintf("Use '%s' instead", replacement)).
			WithFix(fix.ReplaceRange(ctx.File, dep.Line, span.Start, dep.Line, span.End, replacement)).
			Build()
		violations = append(violations, v)
	}

	return violations, nil
}

// DuplicateDependencyRule flags a dependency declared twice in the same
// configuration and block.
type DuplicateDependencyRule struct {
	lint.BaseRule
}

// NewDuplicateDependencyRule creates a new duplicate dependency rule.
func NewDuplicateDependencyRule() *DuplicateDependencyRule {
	return &DuplicateDependencyRule{
		BaseRule: lint.NewBaseRule(
			"GL002",
			"duplicate-dependency",
			"A dependency should be declared only once per configuration",
			[]string{"dependencies"},
			true,
		),
	}
}

// DefaultSeverity reports duplicates as errors.
func (r *DuplicateDependencyRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Apply removes every declaration after the first.
func (r *DuplicateDependencyRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	seen := make(map[string]int)

	for _, dep := range ctx.Doc.Dependencies() {
		if ctx.Cancelled() {
			return violations, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		key := strings.Join(dep.Blocks, "/") + "|" + dep.Configuration + "|" + dep.Coordinate()
		first, dup := seen[key]
		if !dup {
			seen[key] = dep.Line
			continue
		}

		line, _ := ctx.Doc.Line(dep.Line)
		v := lint.NewViolation(r.ID(), ctx.Doc, line,
			fmt.Sprintf("Dependency '%s' is already declared on line %d", dep.Coordinate(), first)).
			WithSuggestion("Remove the duplicate declaration").
			WithFix(fix.DeleteLines(ctx.File, dep.Line, dep.Line)).
			Build()
		violations = append(violations, v)
	}

	return violations, nil
}

// DependencyTupleRule flags map-notation dependencies that can be written as
// a single coordinate string.
type DependencyTupleRule struct {
	lint.BaseRule
}

// NewDependencyTupleRule creates a new dependency tuple rule.
func NewDependencyTupleRule() *DependencyTupleRule {
	return &DependencyTupleRule{
		BaseRule: lint.NewBaseRule(
			"GL003",
			"dependency-tuple",
			"Dependencies should use the 'group:name:version' string notation",
			[]string{"dependencies", "style"},
			true,
		),
	}
}

// Apply rewrites the map arguments of each map-notation dependency.
func (r *DependencyTupleRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	dialect := dialectOf(ctx.Doc)

	for _, dep := range ctx.Doc.Dependencies() {
		if ctx.Cancelled() {
			return violations, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if dep.Notation != script.NotationMap {
			continue
		}

		coordinate := dialect.Quote(dep.Coordinate())
		span := dep.ArgumentSpan
		v := lint.NewViolationAt(r.ID(), ctx.Doc.Path, lint.SpanPosition(dep.Line, span),
			"Use string notation for dependency '"+dep.Module()+"'").
			WithSuggestion("Replace with " + coordinate).
			WithFix(fix.ReplaceRange(ctx.File, dep.Line, span.Start, dep.Line, span.End, coordinate)).
			Build()
		violations = append(violations, v)
	}

	return violations, nil
}

// DynamicVersionRule flags dependency versions that resolve differently over
// time, such as 1.+, latest.release or version ranges.
type DynamicVersionRule struct {
	lint.BaseRule
}

// NewDynamicVersionRule creates a new dynamic version rule.
func NewDynamicVersionRule() *DynamicVersionRule {
	return &DynamicVersionRule{
		BaseRule: lint.NewBaseRule(
			"GL009",
			"dynamic-version",
			"Dependency versions should be fixed for reproducible builds",
			[]string{"dependencies", "reproducibility"},
			false,
		),
	}
}

// isRange reports whether version is a Maven style range such as [1.0,2.0).
func isRange(version string) bool {
	return strings.ContainsAny(version[:1], "[(") || strings.ContainsAny(version[len(version)-1:], "])")
}

// Apply reports each dynamic version. There is no fix: the resolved version
// is only known to Gradle. With allow-ranges set, bounded ranges pass.
func (r *DynamicVersionRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	allowRanges := ctx.OptionBool("allow-ranges", false)

	for _, dep := range ctx.Doc.Dependencies() {
		if !dep.IsDynamic() || (allowRanges && isRange(dep.Version)) {
			continue
		}
		v := lint.NewViolationAt(r.ID(), ctx.Doc.Path, lint.SpanPosition(dep.Line, dep.VersionSpan),
			fmt.Sprintf("Dependency '%s' uses dynamic version '%s'", dep.Module(), dep.Version)).
			WithSuggestion("Pin the version that the build currently resolves").
			Build()
		violations = append(violations, v)
	}

	return violations, nil
}
