package rules

import (
	"strings"
	"unicode"

	"github.com/yaklabco/gradlint/pkg/lint"
	"github.com/yaklabco/gradlint/pkg/script"
)

// Bookmark names shared between rules. A mark of 0 records that the
// landmark is absent, so later rules skip the scan.
const (
	markPluginPrefix = "plugin:"
	markBlockPrefix  = "block:"
)

// landmark returns the line recorded under name, computing and recording it
// with find on first use.
func landmark(ctx *lint.RuleContext, name string, find func() (int, bool)) (int, bool) {
	if ctx.Bookmarks == nil {
		return find()
	}
	if line, ok := ctx.Bookmarks.Get(name); ok {
		return line, line > 0
	}
	line, ok := find()
	if !ok {
		line = 0
	}
	ctx.Bookmarks.Set(name, line)
	return line, ok
}

// pluginLine returns the line applying plugin id.
func pluginLine(ctx *lint.RuleContext, id string) (int, bool) {
	return landmark(ctx, markPluginPrefix+id, func() (int, bool) {
		for _, p := range ctx.Doc.Plugins() {
			if p.ID == id {
				return p.Line, true
			}
		}
		return 0, false
	})
}

// topBlock returns the first top-level block called name.
func topBlock(ctx *lint.RuleContext, name string) (script.Block, bool) {
	line, ok := landmark(ctx, markBlockPrefix+name, func() (int, bool) {
		blocks := ctx.Doc.BlocksNamed(name, 0)
		if len(blocks) == 0 {
			return 0, false
		}
		return blocks[0].StartLine, true
	})
	if !ok {
		return script.Block{}, false
	}
	for _, b := range ctx.Doc.BlocksNamed(name, 0) {
		if b.StartLine == line {
			return b, true
		}
	}
	return script.Block{}, false
}

// indentOf returns the leading whitespace of text.
func indentOf(text string) string {
	return text[:len(text)-len(strings.TrimLeftFunc(text, unicode.IsSpace))]
}

// dialectOf treats scripts of unknown dialect as Groovy.
func dialectOf(doc *script.Document) script.Dialect {
	if doc.Dialect == script.DialectKotlin {
		return script.DialectKotlin
	}
	return script.DialectGroovy
}
