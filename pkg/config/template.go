package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

const commentWrapWidth = 70

type TemplateOptions struct {
	// Full documents every rule; otherwise only the global keys are written.
	Full   bool
	Format FileFormat // empty means YAML
	Rules  []RuleInfo

	// IncludeRules limits a full template to these rule IDs.
	IncludeRules []string
}

// RuleInfo is the registry's description of one rule, shared by the
// template writer, the rules command and the SARIF reporter.
type RuleInfo struct {
	ID, Name, Description string

	Enabled  bool
	Severity Severity
	Tags     []string
	CanFix   bool
}

// GenerateTemplate renders a starter config file in opts.Format.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", FileFormatYAML:
		return generateYAMLTemplate(opts), nil
	case FileFormatTOML:
		return generateTOMLTemplate(opts), nil
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func generateYAMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for all rules: error, warning, or info
severity_default: warning

# Maximum lint-and-fix rounds per file
# max_fix_passes: 10

# Backup configuration for auto-fix (mode: sidecar or none)
backups:
  enabled: true
  mode: sidecar

# File patterns to ignore (doublestar globs)
# ignore:
#   - "**/buildSrc/**"

# Rule-specific configuration, keyed by ID or name
`)

	if !opts.Full {
		buf.WriteString(`# rules:
#   GL004:
#     enabled: true
#     options:
#       plugins:
#         - nebula.source-jar
#   trailing-whitespace:
#     severity: info
`)
		return buf.Bytes()
	}

	buf.WriteString("rules:\n")
	for _, rule := range templateRules(opts) {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth, "  # "))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes()
}

func generateTOMLTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for all rules: error, warning, or info
severity_default = "warning"

# Maximum lint-and-fix rounds per file
# max_fix_passes = 10

# File patterns to ignore (doublestar globs)
# ignore = ["**/buildSrc/**"]

# Backup configuration for auto-fix (mode: sidecar or none)
[backups]
enabled = true
mode = "sidecar"
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration, keyed by ID or name
# [rules.GL004]
# enabled = true
# options = { plugins = ["nebula.source-jar"] }
`)
		return buf.Bytes()
	}

	for _, rule := range templateRules(opts) {
		fmt.Fprintf(&buf, "\n# %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "# %s\n", wrapComment(rule.Description, commentWrapWidth, "# "))
		if rule.CanFix {
			buf.WriteString("# Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "[rules.%s]\n", rule.ID)
		fmt.Fprintf(&buf, "enabled = %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "severity = %q\n", rule.Severity)
	}

	return buf.Bytes()
}

// templateRules returns the rules to document, filtered and sorted by ID.
func templateRules(opts TemplateOptions) []RuleInfo {
	rules := slices.Clone(opts.Rules)
	if len(opts.IncludeRules) > 0 {
		rules = lo.Filter(rules, func(r RuleInfo, _ int) bool {
			return slices.Contains(opts.IncludeRules, r.ID)
		})
	}

	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return rules
}

// wrapComment breaks text at word boundaries so no line exceeds maxWidth,
// joining the lines with "\n"+prefix. A single long word is not split.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var (
		lines []string
		line  strings.Builder
	)
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n"+prefix)
}

// DefaultTemplateHeader is the comment block that opens generated configs.
func DefaultTemplateHeader() string {
	return `# gradlint configuration
# See: https://github.com/yaklabco/gradlint`
}
