package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/samber/lo"

	"github.com/yaklabco/gradlint/internal/logging"
	"github.com/yaklabco/gradlint/pkg/config"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/fsutil"
)

const DefaultMaxFixPasses = config.DefaultMaxFixPasses

// Failure classes of a pipeline run. Errors returned by Pipeline wrap one
// of these.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrApplyFailure     = errors.New("apply failure")
	ErrWriteFailure     = errors.New("write failure")

	pipelineErrors = []error{ErrFileNotFound, ErrPermissionDenied, ErrParseFailure, ErrApplyFailure, ErrWriteFailure}
)

// IsPipelineError reports whether err belongs to one of the failure classes
// above, as opposed to cancellation or an unexpected fault.
func IsPipelineError(err error) bool {
	return lo.SomeBy(pipelineErrors, func(target error) bool { return errors.Is(err, target) })
}

const skipRaced = "file modified during processing"

// PipelineResult is everything the pipeline did to one build script. The
// embedded FileResult is the lint result of the final content, so after a
// fix run it describes ModifiedContent.
type PipelineResult struct {
	*FileResult

	Path         string
	OriginalInfo *fsutil.FileInfo

	// Modified is set once any fix pass changed the text; ModifiedContent
	// then holds the final text.
	Modified        bool
	ModifiedContent []byte

	// Diffs is filled in dry-run mode: the text change of Path first, then
	// one diff per exclusive patchset.
	Diffs []*fix.Diff

	Skipped       bool
	SkipReason    string
	BackupCreated bool
	Written       bool

	// Deleted and Created list the paths exclusive patchsets touched.
	Deleted []string
	Created []string

	FixPasses         int // passes that applied at least one fix
	TotalFixesApplied int
}

func (pr *PipelineResult) skip(reason string) {
	pr.Skipped = true
	pr.SkipReason = reason
}

// Summary describes the outcome in a couple of words.
func (pr *PipelineResult) Summary() string {
	touched := len(pr.Created) > 0 || len(pr.Deleted) > 0
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case len(pr.Deleted) > 0 && pr.Deleted[0] == pr.Path:
		return "deleted"
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written || touched:
		return "fixed"
	case pr.Modified || len(pr.Diffs) > 0:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	}
	return "ok"
}

type PipelineOptions struct {
	// Fix applies accepted fixes. It turns on auto-fix for the rules even
	// when the configuration leaves Fix off.
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection compares content hashes before writing; otherwise
	// only size and modification time are compared.
	StrictRaceDetection bool

	// MaxFixPasses bounds the lint-and-fix loop. A fix dropped as a conflict
	// is retried against the updated text in the next pass. Zero means
	// DefaultMaxFixPasses.
	MaxFixPasses int
}

func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{Backup: fsutil.DefaultBackupConfig(), StrictRaceDetection: true}
}

// PipelineOptionsFromConfig derives pipeline options from a resolved
// configuration. A nil config gives DefaultPipelineOptions.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: cfg.Strict,
		MaxFixPasses:        cfg.MaxFixPasses,
	}
}

// BackupConfigFromConfig turns the backups section, and the no-backups
// switch, into an fsutil.BackupConfig. An empty mode means sidecar.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups && mode != fsutil.BackupModeNone,
		Mode:    mode,
	}
}

// Pipeline lints one build script and, in fix mode, applies its fixes to
// disk without losing concurrent edits.
type Pipeline struct {
	Engine *Engine
}

func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads path and runs the lint-and-fix loop over it. Without
// Fix that is all. With DryRun the changes are rendered as diffs. Otherwise
// the new text is written under the advisory lock, unless the file changed
// since it was read, and the exclusive patchsets run afterwards. Deleting
// path supersedes its text fixes.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	ctx, _ = logging.ForScript(ctx, path)

	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, classify(err)
	}

	result, err := p.fixLoop(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	switch {
	case !opts.Fix:
		return result, nil
	case opts.DryRun:
		result.renderDiffs(original)
		return result, nil
	}

	c := committer{result: result, info: info, opts: opts}
	if result.Modified && !deletesPath(result.Exclusive, path) {
		if err := c.write(ctx); err != nil {
			return nil, err
		}
		if result.Skipped {
			return result, nil
		}
	}
	if err := c.runExclusive(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// ProcessContent runs the lint-and-fix loop over in-memory content. It
// never touches the file system: exclusive patchsets are reported, and
// diffed in dry-run mode, but not executed.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content []byte, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	ctx, _ = logging.ForScript(ctx, path)

	result, err := p.fixLoop(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}
	if opts.Fix && opts.DryRun {
		result.renderDiffs(content)
	}
	return result, nil
}

// fixLoop lints content and, in fix mode, applies the accepted text fixes
// and lints again until a pass yields no fixes or the pass limit is hit.
// The last lint always runs against the final content.
func (p *Pipeline) fixLoop(ctx context.Context, path string, content []byte, cfg *config.Config, opts PipelineOptions) (*PipelineResult, error) {
	logger := logging.FromContext(ctx)
	result := &PipelineResult{Path: path}

	passes := opts.MaxFixPasses
	if passes <= 0 {
		passes = DefaultMaxFixPasses
	}
	if opts.Fix && cfg != nil && !cfg.Fix {
		cfg = cfg.Clone()
		cfg.Fix = true
	}

	for pass := 0; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fr, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = fr
		if !opts.Fix || len(fr.Fixes) == 0 {
			break
		}
		if pass == passes {
			logger.Debug("fix pass limit reached",
				logging.FieldPass, pass,
				logging.FieldFixes, len(fr.Fixes))
			break
		}

		content, err = fix.Apply(content, fr.Fixes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrApplyFailure, path, err)
		}
		logger.Debug("applied fixes",
			logging.FieldPass, pass+1,
			logging.FieldFixes, len(fr.Fixes),
			logging.FieldConflicts, len(fr.Conflicts))

		result.FixPasses++
		result.TotalFixesApplied += len(fr.Fixes)
		result.Modified = true
		result.ModifiedContent = content
	}
	return result, nil
}

// renderDiffs fills Diffs for dry-run mode.
func (pr *PipelineResult) renderDiffs(original []byte) {
	if pr.Modified && !deletesPath(pr.Exclusive, pr.Path) {
		if d := fix.GenerateDiff(pr.Path, original, pr.ModifiedContent); d != nil {
			pr.Diffs = append(pr.Diffs, d)
		}
	}

	for _, ps := range pr.Exclusive {
		f := ps.Fixes[0]
		switch {
		case f.CreatesFile():
			changes, _ := f.Changes()
			d := fix.CreateDiff(f.Path(), []byte(changes))
			d.Symlink = f.FileType() == fix.FileTypeSymlink
			pr.Diffs = append(pr.Diffs, d)
		case f.DeletesFile():
			content := original
			if f.Path() != pr.Path {
				content, _ = f.File().Snapshot()
			}
			pr.Diffs = append(pr.Diffs, fix.DeleteDiff(f.Path(), content))
		}
	}
}

// deletesPath reports whether an exclusive patchset deletes path.
func deletesPath(exclusive []fix.Patchset, path string) bool {
	return lo.SomeBy(exclusive, func(ps fix.Patchset) bool {
		return ps.Fixes[0].DeletesFile() && ps.File.Path == path
	})
}

// classify wraps a read error in its failure class.
func classify(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}
