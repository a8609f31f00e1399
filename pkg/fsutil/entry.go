package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists indicates a file that was to be created already exists.
var ErrExists = errors.New("file already exists")

// CreateFile creates a new regular file at path with content. It fails with
// ErrExists rather than replace an existing file or link. Missing parent
// directories are created.
func CreateFile(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctxErr(ctx, "create file"); err != nil {
		return err
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// CreateSymlink creates a symbolic link at path pointing at target.
func CreateSymlink(ctx context.Context, path, target string) error {
	if err := ctxErr(ctx, "create symlink"); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}

	if err := os.Symlink(target, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("symlink %s: %w", path, err)
	}
	return nil
}

// RemoveFile removes the file or symbolic link at path. A symlink is removed
// itself; its target is left alone.
func RemoveFile(ctx context.Context, path string) error {
	if err := ctxErr(ctx, "remove file"); err != nil {
		return err
	}

	stat, err := os.Lstat(path)
	if err != nil {
		return classify(path, err)
	}
	if stat.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
