package lint

import "github.com/yaklabco/gradlint/pkg/config"

// BaseRule carries the static metadata of a rule. Concrete rules embed it,
// implement Apply, and override DefaultEnabled or DefaultSeverity when the
// rule is opt-in or more severe than a warning.
type BaseRule struct {
	id      string
	name    string
	desc    string
	tags    []string
	fixable bool
}

// NewBaseRule returns rule metadata. IDs take the form "GL" plus three
// digits; names are lower-case and hyphenated.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{id: id, name: name, desc: desc, tags: tags, fixable: fixable}
}

func (r *BaseRule) ID() string          { return r.id }
func (r *BaseRule) Name() string        { return r.name }
func (r *BaseRule) Description() string { return r.desc }
func (r *BaseRule) Tags() []string      { return r.tags }
func (r *BaseRule) CanFix() bool        { return r.fixable }

// DefaultEnabled is true; opt-in rules override it.
func (r *BaseRule) DefaultEnabled() bool { return true }

// DefaultSeverity is warning.
func (r *BaseRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

// Apply reports nothing. Every concrete rule replaces it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Violation, error) { return nil, nil }

// Describe returns the metadata of rule as shown by "gradlint rules" and
// written into configuration templates.
func Describe(rule Metadata) config.RuleInfo {
	return config.RuleInfo{
		ID:          rule.ID(),
		Name:        rule.Name(),
		Description: rule.Description(),
		Enabled:     rule.DefaultEnabled(),
		Severity:    rule.DefaultSeverity(),
		Tags:        rule.Tags(),
		CanFix:      rule.CanFix(),
	}
}
