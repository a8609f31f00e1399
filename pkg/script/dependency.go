package script

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Notation is the syntax a dependency is declared with.
type Notation int

const (
	// NotationString is 'group:name:version[:classifier]'.
	NotationString Notation = iota

	// NotationMap is group: 'g', name: 'n', version: 'v'.
	NotationMap
)

// Span is a 1-based rune column range on one line; End is exclusive.
type Span struct {
	Start int
	End   int
}

// Dependency is one external module declaration.
type Dependency struct {
	// Line is the 1-based line number, set by Document.Dependencies.
	Line int

	// Blocks are the enclosing block names, set by Document.Dependencies.
	Blocks []string

	Configuration string
	Group         string
	Name          string
	Version       string
	Classifier    string
	Notation      Notation

	// ConfigurationSpan covers the configuration name.
	ConfigurationSpan Span

	// ArgumentSpan covers the quoted coordinate or every map entry.
	ArgumentSpan Span

	// VersionSpan covers the version text inside its quotes; zero when absent.
	VersionSpan Span
}

// Module returns "group:name".
func (d Dependency) Module() string {
	return d.Group + ":" + d.Name
}

// Coordinate returns the string notation of the dependency.
func (d Dependency) Coordinate() string {
	parts := []string{d.Group, d.Name}
	if d.Version != "" || d.Classifier != "" {
		parts = append(parts, d.Version)
	}
	if d.Classifier != "" {
		parts = append(parts, d.Classifier)
	}
	return strings.Join(parts, ":")
}

// IsDynamic reports whether the version is a dynamic selector such as
// "1.+", "latest.release" or a range like "[1.0,2.0)".
func (d Dependency) IsDynamic() bool {
	v := d.Version
	return strings.HasSuffix(v, "+") ||
		strings.HasPrefix(v, "latest.") ||
		strings.HasPrefix(v, "[") || strings.HasPrefix(v, "(") ||
		strings.HasSuffix(v, "]") || strings.HasSuffix(v, ")")
}

var (
	stringNotation = regexp.MustCompile(`^\s*([A-Za-z_]\w*)(\s*\(?\s*|\s+)(['"])([^'"$]+)['"]`)
	mapPrefix      = regexp.MustCompile(`^\s*([A-Za-z_]\w*)(\s*\(?\s*|\s+)`)
	mapEntry       = regexp.MustCompile(`^\s*,?\s*(\w+)\s*[:=]\s*(['"])([^'"$]*)['"]`)
)

// ParseDependency parses an external module declaration from one line of
// comment-free code. Project dependencies, file trees, and coordinates built
// with interpolation are not recognised.
func ParseDependency(code string) (Dependency, bool) {
	if m := stringNotation.FindStringSubmatchIndex(code); m != nil {
		return parseStringNotation(code, m)
	}
	return parseMapNotation(code)
}

func parseStringNotation(code string, m []int) (Dependency, bool) {
	coordinate := code[m[8]:m[9]]
	parts := strings.Split(coordinate, ":")
	if len(parts) < 2 || len(parts) > 4 || parts[0] == "" || parts[1] == "" {
		return Dependency{}, false
	}

	dep := Dependency{
		Configuration:     code[m[2]:m[3]],
		Group:             parts[0],
		Name:              parts[1],
		Notation:          NotationString,
		ConfigurationSpan: span(code, m[2], m[3]),
		ArgumentSpan:      span(code, m[6], m[9]+1),
	}
	if len(parts) >= 3 {
		dep.Version = parts[2]
		start := m[8] + len(parts[0]) + len(parts[1]) + 2
		dep.VersionSpan = span(code, start, start+len(parts[2]))
	}
	if len(parts) == 4 {
		dep.Classifier = parts[3]
	}
	return dep, true
}

func parseMapNotation(code string) (Dependency, bool) {
	prefix := mapPrefix.FindStringSubmatchIndex(code)
	if prefix == nil {
		return Dependency{}, false
	}

	dep := Dependency{
		Configuration:     code[prefix[2]:prefix[3]],
		Notation:          NotationMap,
		ConfigurationSpan: span(code, prefix[2], prefix[3]),
	}

	pos := prefix[1]
	first, last := -1, -1
	for {
		m := mapEntry.FindStringSubmatchIndex(code[pos:])
		if m == nil {
			break
		}
		key, value := code[pos+m[2]:pos+m[3]], code[pos+m[6]:pos+m[7]]
		switch key {
		case "group":
			dep.Group = value
		case "name":
			dep.Name = value
		case "version":
			dep.Version = value
			dep.VersionSpan = span(code, pos+m[6], pos+m[7])
		case "classifier":
			dep.Classifier = value
		default:
			return Dependency{}, false
		}
		if first < 0 {
			first = pos + m[2]
		}
		last = pos + m[1]
		pos += m[1]
	}

	if dep.Group == "" || dep.Name == "" {
		return Dependency{}, false
	}
	dep.ArgumentSpan = span(code, first, last)
	return dep, true
}

// span converts byte offsets in s into a rune column span.
func span(s string, start, end int) Span {
	return Span{
		Start: utf8.RuneCountInString(s[:start]) + 1,
		End:   utf8.RuneCountInString(s[:end]) + 1,
	}
}
