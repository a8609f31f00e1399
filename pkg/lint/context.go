package lint

import (
	"context"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/script"
)

// RuleContext is what a rule sees during one Apply call. It is created per
// rule invocation and carries the request context as a field.
type RuleContext struct {
	Ctx context.Context

	Doc *script.Document

	// File is the in-memory source that fixes are built against.
	File fix.SourceFile

	Config     *config.Config
	RuleConfig *config.RuleConfig // nil when the rule has no settings
	Registry   *Registry

	// Bookmarks is shared by every rule run against the same document.
	Bookmarks *Bookmarks
}

func NewRuleContext(
	ctx context.Context,
	doc *script.Document,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	rc := &RuleContext{
		Ctx:        ctx,
		Doc:        doc,
		Config:     cfg,
		RuleConfig: ruleCfg,
		Bookmarks:  NewBookmarks(),
	}
	if doc != nil {
		rc.File = fix.NewSourceFileWithContent(doc.Path, doc.Content)
	}
	return rc
}

// Cancelled reports whether the run has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx.Err() != nil
}

// Option returns the raw option stored under key, or def.
func (rc *RuleContext) Option(key string, def any) any {
	if rc.RuleConfig == nil {
		return def
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return def
}

// optionAs returns the option under key when it has type T.
func optionAs[T any](rc *RuleContext, key string, def T) T {
	if v, ok := rc.Option(key, def).(T); ok {
		return v
	}
	return def
}

// OptionInt accepts the integer shapes the config decoders produce: int
// from YAML, int64 from TOML and float64 from JSON.
func (rc *RuleContext) OptionInt(key string, def int) int {
	switch v := rc.Option(key, def).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

func (rc *RuleContext) OptionString(key, def string) string {
	return optionAs(rc, key, def)
}

func (rc *RuleContext) OptionBool(key string, def bool) bool {
	return optionAs(rc, key, def)
}

// OptionStringSlice accepts []string or a decoded []any list, keeping only
// the string items. A list with no strings yields def.
func (rc *RuleContext) OptionStringSlice(key string, def []string) []string {
	switch v := rc.Option(key, def).(type) {
	case []string:
		return v
	case []any:
		if items := lo.FilterMap(v, func(item any, _ int) (string, bool) {
			s, ok := item.(string)
			return s, ok
		}); len(items) > 0 {
			return items
		}
	}
	return def
}

// Bookmarks records named line numbers while rules walk a document, so a
// later rule can place an insertion relative to an earlier landmark (the
// java plugin line, the first dependencies block). The engine creates one
// per document.
type Bookmarks struct {
	lines map[string]int
}

func NewBookmarks() *Bookmarks {
	return &Bookmarks{lines: make(map[string]int)}
}

func (b *Bookmarks) Set(name string, line int) { b.lines[name] = line }

// SetFirst keeps an existing mark.
func (b *Bookmarks) SetFirst(name string, line int) {
	if _, ok := b.lines[name]; !ok {
		b.lines[name] = line
	}
}

func (b *Bookmarks) Get(name string) (int, bool) {
	line, ok := b.lines[name]
	return line, ok
}

func (b *Bookmarks) Len() int { return len(b.lines) }
