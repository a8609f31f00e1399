// Package script scans Gradle build scripts (Groovy and Kotlin DSL) into a
// line-oriented document for lint rules.
//
// The scanner is not a parser. It strips comments, tracks string literals,
// and counts braces so rules can ask which block a line sits in, what
// dependency a line declares, or which plugins a script applies.
package script

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
)

// Line is one physical line of a document.
type Line struct {
	// Number is the 1-based line number.
	Number int

	// Text is the raw line without its '\n' terminator. A trailing '\r' is kept.
	Text string

	// Code is Text with comments replaced by spaces, so rune columns in Code
	// match those in Text. A trailing '\r' is removed.
	Code string

	// Blocks lists the enclosing block names at the start of the line,
	// outermost first.
	Blocks []string
}

// Depth returns the brace depth at the start of the line.
func (l Line) Depth() int { return len(l.Blocks) }

// Innermost returns the name of the innermost enclosing block, or "".
func (l Line) Innermost() string {
	if len(l.Blocks) == 0 {
		return ""
	}
	return l.Blocks[len(l.Blocks)-1]
}

// IsBlank reports whether the line has no code (empty, whitespace, or comment).
func (l Line) IsBlank() bool { return strings.TrimSpace(l.Code) == "" }

// Block is a brace-delimited region such as "dependencies { ... }".
type Block struct {
	Name      string
	StartLine int // line holding the opening brace
	EndLine   int // line holding the closing brace
	Depth     int // 0 for top-level blocks
}

// Document is a scanned build script.
type Document struct {
	Path    string
	Dialect Dialect
	Content []byte
	Lines   []Line
	Blocks  []Block
}

// Parse scans content. It never fails; unbalanced braces close at the last line.
func Parse(path string, content []byte) *Document {
	doc := &Document{
		Path:    path,
		Dialect: DetectDialect(path, content),
		Content: content,
	}

	text := strings.TrimSuffix(string(content), "\n")
	if text == "" && len(content) == 0 {
		return doc
	}

	var s scanner
	for i, raw := range strings.Split(text, "\n") {
		number := i + 1
		inTriple := s.inTriple != ""
		code := s.stripComments(strings.TrimSuffix(raw, "\r"))
		doc.Lines = append(doc.Lines, Line{
			Number: number,
			Text:   raw,
			Code:   code,
			Blocks: s.names(),
		})
		s.track(doc, number, code, inTriple)
	}

	last := len(doc.Lines)
	for len(s.stack) > 0 {
		s.pop(doc, last)
	}

	slices.SortFunc(doc.Blocks, func(a, b Block) int {
		if c := cmp.Compare(a.StartLine, b.StartLine); c != 0 {
			return c
		}
		return cmp.Compare(a.Depth, b.Depth)
	})

	return doc
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.Lines) }

// Line returns line n (1-based).
func (d *Document) Line(n int) (Line, bool) {
	if n < 1 || n > len(d.Lines) {
		return Line{}, false
	}
	return d.Lines[n-1], true
}

// BlocksNamed returns the blocks called name at the given depth, in source
// order. A negative depth matches any depth.
func (d *Document) BlocksNamed(name string, depth int) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Name == name && (depth < 0 || b.Depth == depth) {
			out = append(out, b)
		}
	}
	return out
}

// IsEmpty reports whether the document holds no code at all.
func (d *Document) IsEmpty() bool {
	for _, l := range d.Lines {
		if !l.IsBlank() {
			return false
		}
	}
	return true
}

// Dependencies returns every dependency declared directly inside a
// "dependencies" block.
func (d *Document) Dependencies() []Dependency {
	var out []Dependency
	for _, l := range d.Lines {
		if l.Innermost() != "dependencies" {
			continue
		}
		if dep, ok := ParseDependency(l.Code); ok {
			dep.Line = l.Number
			dep.Blocks = l.Blocks
			out = append(out, dep)
		}
	}
	return out
}

// Plugins returns every plugin applied with "apply plugin:" or declared in
// a top-level plugins block.
func (d *Document) Plugins() []Plugin {
	var out []Plugin
	for _, l := range d.Lines {
		p, ok := ParsePlugin(l.Code)
		if !ok {
			continue
		}
		if p.Style == PluginStyleBlock && (l.Depth() != 1 || l.Innermost() != "plugins") {
			continue
		}
		p.Line = l.Number
		out = append(out, p)
	}
	return out
}

type openBlock struct {
	name  string
	start int
}

// scanner carries state between lines.
type scanner struct {
	stack          []openBlock
	inBlockComment bool
	inTriple       string // `"""` or `'''` while inside a multi-line string
}

func (s *scanner) names() []string {
	if len(s.stack) == 0 {
		return nil
	}
	out := make([]string, len(s.stack))
	for i, b := range s.stack {
		out[i] = b.name
	}
	return out
}

func (s *scanner) pop(doc *Document, line int) {
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	doc.Blocks = append(doc.Blocks, Block{
		Name:      top.name,
		StartLine: top.start,
		EndLine:   line,
		Depth:     len(s.stack),
	})
}

// stripComments blanks out comments, keeping the rune count of the line.
func (s *scanner) stripComments(line string) string {
	runes := []rune(line)
	var quote rune

	for i := 0; i < len(runes); i++ {
		switch {
		case s.inBlockComment:
			if runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				s.inBlockComment = false
				runes[i], runes[i+1] = ' ', ' '
				i++
				continue
			}
			runes[i] = ' '
		case s.inTriple != "":
			if strings.HasPrefix(string(runes[i:]), s.inTriple) {
				s.inTriple = ""
				i += 2
			}
		case quote != 0:
			if runes[i] == '\\' {
				i++
			} else if runes[i] == quote {
				quote = 0
			}
		case runes[i] == '/' && i+1 < len(runes) && runes[i+1] == '/':
			for j := i; j < len(runes); j++ {
				runes[j] = ' '
			}
			return string(runes)
		case runes[i] == '/' && i+1 < len(runes) && runes[i+1] == '*':
			s.inBlockComment = true
			runes[i], runes[i+1] = ' ', ' '
			i++
		case runes[i] == '"' || runes[i] == '\'':
			rest := string(runes[i:])
			if strings.HasPrefix(rest, `"""`) || strings.HasPrefix(rest, `'''`) {
				s.inTriple = rest[:3]
				i += 2
				continue
			}
			quote = runes[i]
		}
	}

	return string(runes)
}

var blockNamePattern = regexp.MustCompile(`([A-Za-z_][\w.]*)\s*(\([^()]*\))?\s*$`)

// track updates the block stack from the braces in code, skipping braces
// inside string literals. inTriple is the multi-line string state at the
// start of the line.
func (s *scanner) track(doc *Document, number int, code string, inTriple bool) {
	var quote rune
	runes := []rune(code)

	for i, r := range runes {
		switch {
		case inTriple:
			continue
		case quote != 0:
			if r == quote && (i == 0 || runes[i-1] != '\\') {
				quote = 0
			}
		case r == '"' || r == '\'':
			rest := string(runes[i:])
			if strings.HasPrefix(rest, `"""`) || strings.HasPrefix(rest, `'''`) {
				inTriple = true
				continue
			}
			quote = r
		case r == '{':
			name := ""
			if m := blockNamePattern.FindStringSubmatch(string(runes[:i])); m != nil {
				name = m[1]
			} else if strings.TrimSpace(string(runes[:i])) == "" && number > 1 {
				// Brace on its own line: the name is at the end of the previous line.
				if m := blockNamePattern.FindStringSubmatch(doc.Lines[number-2].Code); m != nil {
					name = m[1]
				}
			}
			s.stack = append(s.stack, openBlock{name: name, start: number})
		case r == '}':
			if len(s.stack) > 0 {
				s.pop(doc, number)
			}
		}
	}
}
