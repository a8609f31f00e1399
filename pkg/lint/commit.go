package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gradlint/internal/logging"
	"github.com/yaklabco/gradlint/pkg/fix"
	"github.com/yaklabco/gradlint/pkg/fsutil"
)

// committer carries the state needed to put one result on disk.
type committer struct {
	result *PipelineResult
	info   *fsutil.FileInfo // state of result.Path when it was read
	opts   PipelineOptions
}

// raced reports whether result.Path changed on disk since it was read.
// The caller must hold the lock on the path.
func (c committer) raced(ctx context.Context) (bool, error) {
	check := fsutil.CheckModifiedQuick
	if c.opts.StrictRaceDetection {
		check = fsutil.CheckModified
	}
	changed, err := check(ctx, c.info)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return changed, nil
}

func (c committer) backup(ctx context.Context, path string) error {
	if !c.opts.Backup.Enabled {
		return nil
	}
	created, err := fsutil.CreateBackup(ctx, path, c.opts.Backup)
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	c.result.BackupCreated = c.result.BackupCreated || created
	return nil
}

// write replaces result.Path with the fixed text under the advisory lock.
// A file that changed since it was read is skipped, not overwritten.
func (c committer) write(ctx context.Context) error {
	path := c.result.Path
	err := fsutil.WithLock(ctx, path, func() error {
		if changed, err := c.raced(ctx); err != nil || changed {
			if changed {
				c.result.skip(skipRaced)
			}
			return err
		}
		if err := c.backup(ctx, path); err != nil {
			return err
		}
		if err := fsutil.WriteAtomic(ctx, path, c.result.ModifiedContent, c.info.Mode); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailure, err)
		}
		c.result.Written = true
		return nil
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// runExclusive executes the create and delete patchsets in order.
func (c committer) runExclusive(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	for _, ps := range c.result.Exclusive {
		f := ps.Fixes[0]
		var err error
		switch {
		case f.CreatesFile():
			err = c.create(ctx, f)
		case f.DeletesFile():
			err = c.remove(ctx, f.Path())
		}
		if err != nil {
			return err
		}
		logger.Debug("ran exclusive fix", logging.FieldTarget, f.Path(), logging.FieldKind, f.Kind())
	}
	return nil
}

// create makes the file or symlink f describes. An existing target is left
// alone.
func (c committer) create(ctx context.Context, f fix.Fix) error {
	target := f.Path()
	changes, _ := f.Changes()

	var err error
	if f.FileType() == fix.FileTypeSymlink {
		err = fsutil.CreateSymlink(ctx, target, changes)
	} else {
		err = fsutil.CreateFile(ctx, target, []byte(changes), fsutil.DefaultFileMode)
	}
	switch {
	case errors.Is(err, fsutil.ErrExists):
		logging.FromContext(ctx).Debug("skipping create, file exists", logging.FieldTarget, target)
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	c.result.Created = append(c.result.Created, target)
	return nil
}

// remove deletes target under its lock. Deleting the linted script itself
// is subject to the same race check as a write.
func (c committer) remove(ctx context.Context, target string) error {
	err := fsutil.WithLock(ctx, target, func() error {
		if target == c.result.Path {
			if changed, err := c.raced(ctx); err != nil || changed {
				if changed {
					c.result.skip(skipRaced)
				}
				return err
			}
		}
		if err := c.backup(ctx, target); err != nil {
			return err
		}
		if err := fsutil.RemoveFile(ctx, target); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailure, err)
		}
		c.result.Deleted = append(c.result.Deleted, target)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", target, err)
	}
	return nil
}
