package lint

import (
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/gradlint/pkg/script"
)

// Inline suppression directives, written in a // comment:
//
//	// gradlint-disable-next-line GL001 dynamic-version
//	compile 'a:b:1.+' // gradlint-disable-line
//
// With no rule list, every rule is suppressed on the target line.
const (
	directiveDisableLine     = "gradlint-disable-line"
	directiveDisableNextLine = "gradlint-disable-next-line"
)

var directivePattern = regexp.MustCompile(`//\s*(gradlint-disable-(?:next-)?line)\b([^\n]*)`)

// suppressions maps a line number to the rule IDs silenced on it.
// A nil slice silences every rule.
type suppressions map[int][]string

// collectSuppressions scans the raw text of every line for directives.
// Rule names are resolved to IDs through registry.
func collectSuppressions(doc *script.Document, registry *Registry) suppressions {
	out := make(suppressions)
	for _, line := range doc.Lines {
		m := directivePattern.FindStringSubmatch(line.Text)
		if m == nil {
			continue
		}

		target := line.Number
		if m[1] == directiveDisableNextLine {
			target++
		}

		fields := strings.FieldsFunc(m[2], func(r rune) bool {
			return r == ' ' || r == '\t' || r == ',' || r == '\r'
		})
		if len(fields) == 0 {
			out[target] = nil
			continue
		}

		ids := out[target]
		if existing, ok := out[target]; ok && existing == nil {
			continue
		}
		for _, f := range fields {
			if id, ok := registry.Resolve(f); ok {
				ids = append(ids, id)
			} else {
				ids = append(ids, f)
			}
		}
		out[target] = ids
	}
	return out
}

// suppressed reports whether a violation of ruleID starting on line is silenced.
func (s suppressions) suppressed(ruleID string, line int) bool {
	ids, ok := s[line]
	if !ok {
		return false
	}
	return ids == nil || slices.Contains(ids, ruleID)
}
