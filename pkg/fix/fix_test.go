package fix_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gradlint/pkg/fix"
)

func mem(content string) fix.SourceFile {
	return fix.NewSourceFileWithContent("build.gradle", []byte(content))
}

func TestConstructorsExtent(t *testing.T) {
	t.Parallel()

	file := mem("a\nb\nc\nd\n")

	replace, err := fix.ReplaceRange(file, 2, 3, 3, 1, "x")
	require.NoError(t, err)
	deleteLines, err := fix.DeleteLines(file, 2, 4)
	require.NoError(t, err)
	whole, err := fix.ReplaceWholeFile(file, "z\n")
	require.NoError(t, err)
	after, err := fix.InsertAfter(file, 1, "x")
	require.NoError(t, err)
	top, err := fix.InsertAfter(file, 0, "x")
	require.NoError(t, err)
	before, err := fix.InsertBefore(file, 3, "x")
	require.NoError(t, err)
	created := fix.CreateFile(fix.NewSourceFile("settings.gradle"), "rootProject.name = 'x'\n", fix.FileTypeRegular)

	tests := []struct {
		name      string
		fix       fix.Fix
		kind      fix.Kind
		from, to  int
		insertion bool
	}{
		{"replace range", replace, fix.KindReplaceRange, 2, 3, false},
		{"delete lines", deleteLines, fix.KindDeleteLines, 2, 4, false},
		{"replace whole file", whole, fix.KindReplaceWholeFile, 1, 4, false},
		{"insert after", after, fix.KindInsertAfter, 2, 1, true},
		{"insert after line zero", top, fix.KindInsertAfter, 1, 0, true},
		{"insert before", before, fix.KindInsertBefore, 3, 2, true},
		{"create file", created, fix.KindCreateFile, 1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.kind, tt.fix.Kind())
			assert.Equal(t, tt.from, tt.fix.From())
			assert.Equal(t, tt.to, tt.fix.To())
			assert.Equal(t, tt.insertion, tt.fix.IsInsertion())
			assert.LessOrEqual(t, tt.fix.From(), tt.fix.To()+1)
		})
	}
}

func TestReplaceRangeColumns(t *testing.T) {
	t.Parallel()

	f, err := fix.ReplaceRange(mem("compile 'a:b:1'\n"), 1, 1, 1, 8, "implementation")
	require.NoError(t, err)

	assert.Equal(t, 1, f.FromColumn())
	assert.Equal(t, 8, f.ToColumn())
	changes, ok := f.Changes()
	assert.True(t, ok)
	assert.Equal(t, "implementation", changes)
	assert.Equal(t, "replace-range [1:1,1:8] build.gradle", f.String())
}

func TestDeleteLinesHasNoChanges(t *testing.T) {
	t.Parallel()

	f, err := fix.DeleteLines(mem("a\n"), 1, 1)
	require.NoError(t, err)

	_, ok := f.Changes()
	assert.False(t, ok)
	assert.Equal(t, "delete-lines [1,1] build.gradle", f.String())
}

func TestInvalidRanges(t *testing.T) {
	t.Parallel()

	file := mem("a\n")
	tests := []struct {
		name  string
		build func() (fix.Fix, error)
		kind  fix.Kind
	}{
		{"replace range line zero", func() (fix.Fix, error) { return fix.ReplaceRange(file, 0, 1, 1, 1, "") }, fix.KindReplaceRange},
		{"replace range reversed lines", func() (fix.Fix, error) { return fix.ReplaceRange(file, 3, 1, 2, 1, "") }, fix.KindReplaceRange},
		{"replace range column zero", func() (fix.Fix, error) { return fix.ReplaceRange(file, 1, 0, 1, 1, "") }, fix.KindReplaceRange},
		{"replace range reversed columns", func() (fix.Fix, error) { return fix.ReplaceRange(file, 1, 5, 1, 2, "") }, fix.KindReplaceRange},
		{"delete lines reversed", func() (fix.Fix, error) { return fix.DeleteLines(file, 2, 1) }, fix.KindDeleteLines},
		{"delete lines zero", func() (fix.Fix, error) { return fix.DeleteLines(file, 0, 1) }, fix.KindDeleteLines},
		{"insert after negative", func() (fix.Fix, error) { return fix.InsertAfter(file, -1, "x") }, fix.KindInsertAfter},
		{"insert before zero", func() (fix.Fix, error) { return fix.InsertBefore(file, 0, "x") }, fix.KindInsertBefore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.build()
			var rangeErr *fix.InvalidRangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.kind, rangeErr.Kind)
			assert.Equal(t, "build.gradle", rangeErr.File)
		})
	}
}

func TestMultiLineReplaceRangeAllowsAnyColumns(t *testing.T) {
	t.Parallel()

	f, err := fix.ReplaceRange(mem("ab\ncd\n"), 1, 3, 2, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.From())
	assert.Equal(t, 2, f.To())
}

func TestReplaceWholeFileCountsDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "build.gradle")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc"), 0o644))

	f, err := fix.ReplaceWholeFile(fix.NewSourceFile(path), "x\n")
	require.NoError(t, err)
	assert.Equal(t, 1, f.From())
	assert.Equal(t, 3, f.To())
}

func TestFileCountingIOFailure(t *testing.T) {
	t.Parallel()

	missing := fix.NewSourceFile(filepath.Join(t.TempDir(), "missing.gradle"))

	_, err := fix.ReplaceWholeFile(missing, "x")
	assert.True(t, errors.Is(err, fix.ErrIOFailure))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = fix.DeleteFile(missing)
	assert.True(t, errors.Is(err, fix.ErrIOFailure))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDeleteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, "common.gradle")
	require.NoError(t, os.WriteFile(target, []byte("a\nb\nc\nd\ne\n"), 0o644))
	link := filepath.Join(dir, "build.gradle")
	require.NoError(t, os.Symlink(target, link))

	t.Run("regular file counts lines", func(t *testing.T) {
		t.Parallel()

		f, err := fix.DeleteFile(fix.NewSourceFile(target))
		require.NoError(t, err)
		assert.Equal(t, 1, f.From())
		assert.Equal(t, 5, f.To())
		assert.True(t, f.DeletesFile())
		assert.True(t, f.RequiresOwnPatchset())
		assert.False(t, f.IsTextual())
		_, ok := f.Changes()
		assert.False(t, ok)
	})

	t.Run("symlink counts one line", func(t *testing.T) {
		t.Parallel()

		f, err := fix.DeleteFile(fix.NewSourceFile(link))
		require.NoError(t, err)
		assert.Equal(t, 1, f.From())
		assert.Equal(t, 1, f.To())
	})

	t.Run("dangling symlink counts one line", func(t *testing.T) {
		t.Parallel()

		dangling := filepath.Join(t.TempDir(), "build.gradle")
		require.NoError(t, os.Symlink("/nonexistent/target.gradle", dangling))

		f, err := fix.DeleteFile(fix.NewSourceFile(dangling))
		require.NoError(t, err)
		assert.Equal(t, 1, f.To())
	})
}

func TestCreateFileDoesNoIO(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does", "not", "exist", "settings.gradle.kts")
	f := fix.CreateFile(fix.NewSourceFile(path), "../common/settings.gradle.kts", fix.FileTypeSymlink)

	assert.Equal(t, fix.KindCreateFile, f.Kind())
	assert.Equal(t, fix.FileTypeSymlink, f.FileType())
	assert.True(t, f.CreatesFile())
	assert.False(t, f.DeletesFile())
	assert.True(t, f.Capabilities().Has(fix.CapCreatesFile))

	_, err := os.Lstat(path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestKindAndFileTypeStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "insert-before", fix.KindInsertBefore.String())
	assert.Equal(t, "Kind(99)", fix.Kind(99).String())
	assert.Equal(t, "symlink", fix.FileTypeSymlink.String())
	assert.Equal(t, "regular", fix.FileTypeRegular.String())
}
