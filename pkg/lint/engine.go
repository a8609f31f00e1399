package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/internal/logging"
	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/script"
)

// ErrForeignFix marks a text fix aimed at a file other than the one linted.
var ErrForeignFix = errors.New("text fix targets another file")

// FileResult is the outcome of one lint pass over a single script.
type FileResult struct {
	Document   *script.Document
	Violations []Violation // rule order

	// Fixes is the conflict-free set of text fixes for the document,
	// sorted by position. It stays empty unless some rule has auto-fix on.
	Fixes []fix.Fix

	// Exclusive holds file creations and deletions, one fix per patchset.
	Exclusive []fix.Patchset

	// Conflicts are text fixes that lost to an overlapping fix. A later
	// pass may still apply them.
	Conflicts []*fix.ConflictError

	FixErrors  []error
	RuleErrors map[string]error // by rule ID
}

func (fr *FileResult) HasIssues() bool { return len(fr.Violations) > 0 }

func (fr *FileResult) HasFixes() bool { return len(fr.Fixes) > 0 || len(fr.Exclusive) > 0 }

func (fr *FileResult) IssueCount() int { return len(fr.Violations) }

// FixableCount counts violations that carry a fix, applied or not.
func (fr *FileResult) FixableCount() int {
	return lo.CountBy(fr.Violations, func(v Violation) bool { return v.HasFix() })
}

// Engine runs the registered rules over scanned scripts.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// lintRun is the state of one LintFile call.
type lintRun struct {
	doc       *script.Document
	cfg       *config.Config
	registry  *Registry
	silenced  suppressions
	bookmarks *Bookmarks
	result    *FileResult
	fixes     []fix.Fix
}

// LintFile scans content and runs every enabled rule over it in ID order.
// Violations on suppressed lines are dropped. Fixes from auto-fix rules are
// grouped: text fixes for path are narrowed to a conflict-free set, and
// file creations and deletions come back as exclusive patchsets.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	doc, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	logging.FromContext(ctx).Debug("scanned script",
		logging.FieldDialect, doc.Dialect,
		logging.FieldLines, doc.LineCount())

	run := &lintRun{
		doc:       doc,
		cfg:       cfg,
		registry:  e.Registry,
		silenced:  collectSuppressions(doc, e.Registry),
		bookmarks: NewBookmarks(),
		result:    &FileResult{Document: doc, RuleErrors: make(map[string]error)},
	}

	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return run.result, fmt.Errorf("linting cancelled: %w", err)
		}
		run.apply(ctx, rr)
	}

	run.route(path)
	return run.result, nil
}

func (run *lintRun) apply(ctx context.Context, rr ResolvedRule) {
	id := rr.Rule.ID()

	rc := NewRuleContext(ctx, run.doc, run.cfg, rr.Config)
	rc.Registry = run.registry
	rc.Bookmarks = run.bookmarks

	violations, err := rr.Rule.Apply(rc)
	if err != nil {
		logging.FromContext(ctx).Debug("rule failed", logging.FieldRule, id, logging.FieldError, err)
		run.result.RuleErrors[id] = err
		return
	}

	for _, v := range violations {
		if run.silenced.suppressed(id, v.StartLine) {
			continue
		}
		v.Severity = rr.Severity
		v.FilePath = cmp.Or(v.FilePath, run.doc.Path)
		v.RuleName = cmp.Or(v.RuleName, rr.Rule.Name())

		if rr.AutoFix {
			if v.Fix != nil {
				run.fixes = append(run.fixes, *v.Fix)
			}
			if v.FixErr != nil {
				run.result.FixErrors = append(run.result.FixErrors, fmt.Errorf("%s: %w", id, v.FixErr))
			}
		}
		run.result.Violations = append(run.result.Violations, v)
	}
}

// route sorts the collected fixes into the result by target.
func (run *lintRun) route(path string) {
	res := run.result
	for _, ps := range fix.Group(run.fixes) {
		switch {
		case ps.Exclusive:
			res.Exclusive = append(res.Exclusive, ps)
		case ps.File.Path != path:
			for _, f := range ps.Fixes {
				res.FixErrors = append(res.FixErrors, fmt.Errorf("%w: %s", ErrForeignFix, f))
			}
		default:
			res.Fixes, res.Conflicts = fix.Resolve(ps.Fixes)
		}
	}
}
