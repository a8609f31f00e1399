package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gradlint/internal/logging"
	"github.com/yaklabco/gradlint/pkg/lint"
)

type Runner struct {
	Pipeline *lint.Pipeline
}

func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the build scripts under opts.Paths and pushes each through
// the pipeline on a pool of opts.Jobs workers. A file that fails is
// recorded in its outcome and the others carry on; only cancellation of ctx
// stops the run, in which case the outcomes finished so far are returned
// with the error. Outcomes are in path order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered build scripts", logging.FieldFilesDiscovered, len(files))

	result := &Result{Files: make([]FileOutcome, 0, len(files)), Stats: newStats()}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	// A nil slot is a file that never ran because the run was cancelled.
	slots := make([]*FileOutcome, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = r.process(gctx, path, opts, pipelineOpts)
			return nil
		})
	}
	waitErr := g.Wait()

	for _, outcome := range slots {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	stats := result.Stats
	logger.Debug("run complete",
		logging.FieldFilesProcessed, stats.FilesProcessed,
		logging.FieldFilesWithIssues, stats.FilesWithIssues,
		logging.FieldFilesModified, stats.FilesModified,
		logging.FieldViolationsTotal, stats.ViolationsTotal)

	if waitErr != nil {
		return result, fmt.Errorf("run cancelled: %w", waitErr)
	}
	return result, nil
}

func (r *Runner) process(ctx context.Context, path string, opts Options, pipelineOpts lint.PipelineOptions) *FileOutcome {
	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
	if err == nil {
		return &FileOutcome{Path: path, Result: pr}
	}

	logger := logging.FromContext(ctx)
	if lint.IsPipelineError(err) || ctx.Err() != nil {
		logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
	} else {
		logger.Warn("unexpected failure", logging.FieldPath, path, logging.FieldError, err)
	}
	return &FileOutcome{Path: path, Error: err}
}
