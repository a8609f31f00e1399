// Package fsutil holds the file system primitives the fix pipeline relies
// on: fingerprinted reads, modification checks, atomic writes, backups,
// advisory locks, and exclusive create and remove.
package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/minio/highwayhash"
)

// hashKey only has to be stable within a process; it is not a secret.
var hashKey = []byte("gradlint-content-fingerprint-key")

// FileInfo is what ReadFile saw, kept so the file can be checked for
// changes before it is written back.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    uint64
}

var (
	ErrNilFileInfo      = errors.New("nil FileInfo")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// ctxErr wraps the context error, if any, with the operation name.
func ctxErr(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Fingerprint is the HighwayHash-64 of content.
func Fingerprint(content []byte) uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		panic(fmt.Sprintf("fsutil: highwayhash key: %v", err))
	}
	_, _ = h.Write(content)
	return h.Sum64()
}

// ReadFile returns the content of path and a FileInfo snapshot of it.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctxErr(ctx, "read file"); err != nil {
		return nil, nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    Fingerprint(content),
	}, nil
}

// CountLines counts the lines of the file at path; see CountContentLines.
func CountLines(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, classify(path, err)
	}
	return CountContentLines(content), nil
}

// CountContentLines counts newline-terminated lines plus an unterminated
// last line. Empty content has no lines.
func CountContentLines(content []byte) int {
	n := bytes.Count(content, []byte{'\n'})
	if len(content) > 0 && content[len(content)-1] != '\n' {
		n++
	}
	return n
}

// IsSymlink inspects path itself, never its target.
func IsSymlink(path string) (bool, error) {
	stat, err := os.Lstat(path)
	if err != nil {
		return false, classify(path, err)
	}
	return stat.Mode()&fs.ModeSymlink != 0, nil
}

// CheckModified reports whether the file changed since info was taken.
// When modification time and size agree the content is re-hashed, so an
// edit that preserves both is still caught.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	modified, err := CheckModifiedQuick(ctx, info)
	if err != nil || modified {
		return modified, err
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return Fingerprint(content) != info.Hash, nil
}

// CheckModifiedQuick compares only modification time and size. A file
// that has disappeared counts as modified.
func CheckModifiedQuick(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctxErr(ctx, "check modified"); err != nil {
		return false, err
	}

	stat, err := os.Stat(info.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}
	return !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
