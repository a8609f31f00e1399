package script

import "regexp"

// PluginStyle is the syntax a plugin is applied with.
type PluginStyle int

const (
	// PluginStyleApply is apply plugin: 'x' or apply(plugin = "x").
	PluginStyleApply PluginStyle = iota

	// PluginStyleBlock is id 'x' or id("x") inside plugins { }.
	PluginStyleBlock
)

// Plugin is one applied plugin.
type Plugin struct {
	ID    string
	Line  int
	Style PluginStyle

	// IDSpan covers the plugin id inside its quotes.
	IDSpan Span
}

var (
	applyPlugin = regexp.MustCompile(`^\s*apply\s*\(?\s*plugin\s*[:=]\s*['"]([\w.\-]+)['"]`)
	blockPlugin = regexp.MustCompile(`^\s*id\s*\(?\s*['"]([\w.\-]+)['"]`)
)

// ParsePlugin recognises a plugin application on one line of comment-free
// code. Block-style matches are only meaningful inside a plugins block;
// Document.Plugins checks that.
func ParsePlugin(code string) (Plugin, bool) {
	if m := applyPlugin.FindStringSubmatchIndex(code); m != nil {
		return Plugin{ID: code[m[2]:m[3]], Style: PluginStyleApply, IDSpan: span(code, m[2], m[3])}, true
	}
	if m := blockPlugin.FindStringSubmatchIndex(code); m != nil {
		return Plugin{ID: code[m[2]:m[3]], Style: PluginStyleBlock, IDSpan: span(code, m[2], m[3])}, true
	}
	return Plugin{}, false
}

// HasPlugin reports whether the document applies the plugin id.
func (d *Document) HasPlugin(id string) bool {
	for _, p := range d.Plugins() {
		if p.ID == id {
			return true
		}
	}
	return false
}
