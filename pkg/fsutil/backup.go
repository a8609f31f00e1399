package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups live.
type BackupMode string

const (
	// BackupModeSidecar writes path + BackupSuffix next to the original.
	BackupModeSidecar BackupMode = "sidecar"
	BackupModeNone    BackupMode = "none"
)

const BackupSuffix = ".gradlint.bak"

type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig is sidecar mode, switched off.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

func (c BackupConfig) active() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// BackupPath returns where the backup of path is kept, or "" in
// BackupModeNone. Unknown modes behave like sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies path to its backup location and reports whether a
// copy was made. The first backup wins: an existing one is kept so that it
// always holds the content from before any fix. A symlink is backed up as
// a link to the same target. A missing original is not an error.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.active() {
		return false, nil
	}
	if err := ctxErr(ctx, "create backup"); err != nil {
		return false, err
	}

	dst := BackupPath(path, cfg.Mode)
	switch _, err := os.Lstat(dst); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup %s: %w", dst, err)
	}

	created, err := copyEntry(ctx, path, dst)
	if err != nil {
		return false, fmt.Errorf("back up %s: %w", path, err)
	}
	return created, nil
}

// copyEntry duplicates the file or link at src as dst. It reports false
// when src does not exist.
func copyEntry(ctx context.Context, src, dst string) (bool, error) {
	stat, err := os.Lstat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if stat.Mode()&fs.ModeSymlink != 0 {
		target, err := os.Readlink(src)
		if err != nil {
			return false, err
		}
		return true, os.Symlink(target, dst)
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return false, err
	}
	return true, WriteAtomic(ctx, dst, content, stat.Mode())
}

// RestoreBackup writes the backup of path back over it and reports whether
// a backup was found.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	if err := ctxErr(ctx, "restore backup"); err != nil {
		return false, err
	}
	src := BackupPath(path, mode)
	if src == "" {
		return false, nil
	}

	stat, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat backup %s: %w", src, err)
	}
	content, err := os.ReadFile(src)
	if err != nil {
		return false, fmt.Errorf("read backup %s: %w", src, err)
	}
	if err := WriteAtomic(ctx, path, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("restore %s: %w", path, err)
	}
	return true, nil
}

// RemoveBackup deletes the backup of path and reports whether one existed.
func RemoveBackup(path string, mode BackupMode) (bool, error) {
	backup := BackupPath(path, mode)
	if backup == "" {
		return false, nil
	}
	err := os.Remove(backup)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove backup %s: %w", backup, err)
	}
	return true, nil
}

func BackupExists(path string, mode BackupMode) bool {
	backup := BackupPath(path, mode)
	if backup == "" {
		return false
	}
	_, err := os.Lstat(backup)
	return err == nil
}
