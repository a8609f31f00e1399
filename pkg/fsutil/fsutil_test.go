package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "build.gradle", "apply plugin: 'java'\n")

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, "apply plugin: 'java'\n", string(got))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(got)), info.Size)
		assert.Equal(t, os.FileMode(0o644), info.Mode.Perm())
		assert.Equal(t, fsutil.Fingerprint(got), info.Hash)
	})

	t.Run("missing file is ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.gradle"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, fsutil.ErrNotFound))
	})

	t.Run("directory is ErrIsDirectory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "build.gradle")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := fsutil.Fingerprint([]byte("compile 'a:b:1'"))
	b := fsutil.Fingerprint([]byte("compile 'a:b:1'"))
	c := fsutil.Fingerprint([]byte("implementation 'a:b:1'"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCountContentLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"single line no newline", "a", 1},
		{"single line with newline", "a\n", 1},
		{"two lines", "a\nb", 2},
		{"blank lines", "\n\n", 2},
		{"crlf", "a\r\nb\r\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fsutil.CountContentLines([]byte(tt.content)))
		})
	}
}

func TestCountLines(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "build.gradle", "a\nb\nc\n")

	n, err := fsutil.CountLines(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = fsutil.CountLines(filepath.Join(dir, "missing.gradle"))
	assert.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestIsSymlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := writeFile(t, dir, "real.gradle", "x\n")
	link := filepath.Join(dir, "link.gradle")
	require.NoError(t, os.Symlink(target, link))

	isLink, err := fsutil.IsSymlink(link)
	require.NoError(t, err)
	assert.True(t, isLink)

	isLink, err = fsutil.IsSymlink(target)
	require.NoError(t, err)
	assert.False(t, isLink)

	// A dangling link is still a link.
	dangling := filepath.Join(dir, "dangling.gradle")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), dangling))
	isLink, err = fsutil.IsSymlink(dangling)
	require.NoError(t, err)
	assert.True(t, isLink)
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "build.gradle", "a\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("content changed with same size and mtime", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "build.gradle", "aaaa\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("bbbb\n"), 0o644))
		require.NoError(t, os.Chtimes(path, time.Now(), info.ModTime))

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "build.gradle", "a\n")
		_, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(context.Background(), info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(context.Background(), nil)
		assert.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}
