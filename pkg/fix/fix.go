// Package fix provides the fix model and patch engine for gradlint.
//
// A Fix is one machine-applicable change against one file. Its extent is a
// pair of 1-based line numbers computed once when the fix is built:
//
//   - range fixes cover lines From..To inclusive (From <= To);
//   - insertion fixes are zero-height markers with To == From-1, meaning
//     "insert before line From" without displacing any line.
//
// Fixes that create or delete a whole file are exclusive: they are never
// combined with other fixes against the same path (see Group). Shareable
// fixes for one file are checked for overlaps by Resolve and applied to the
// original text by Apply, which processes them in descending line order so
// the line numbers of fixes not yet applied stay valid.
package fix

import (
	"fmt"

	"github.com/yaklabco/gradlint/pkg/fsutil"
)

// FileType tags the kind of file a CreateFile fix produces.
type FileType int

const (
	// FileTypeRegular is a plain text file.
	FileTypeRegular FileType = iota

	// FileTypeSymlink is a symbolic link; the fix's changes are the link target.
	FileTypeSymlink
)

// String returns the file type name.
func (t FileType) String() string {
	switch t {
	case FileTypeRegular:
		return "regular"
	case FileTypeSymlink:
		return "symlink"
	default:
		return fmt.Sprintf("FileType(%d)", int(t))
	}
}

// Kind identifies a fix variant.
type Kind int

// Fix variants.
const (
	KindReplaceRange Kind = iota + 1
	KindDeleteLines
	KindReplaceWholeFile
	KindInsertAfter
	KindInsertBefore
	KindDeleteFile
	KindCreateFile
)

var kindNames = map[Kind]string{
	KindReplaceRange:     "replace-range",
	KindDeleteLines:      "delete-lines",
	KindReplaceWholeFile: "replace-whole-file",
	KindInsertAfter:      "insert-after",
	KindInsertBefore:     "insert-before",
	KindDeleteFile:       "delete-file",
	KindCreateFile:       "create-file",
}

// String returns the kebab-case variant name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Capability is a set of patchset constraints declared by a fix.
type Capability uint8

const (
	// CapDeletesFile marks a fix that removes its file.
	CapDeletesFile Capability = 1 << iota

	// CapCreatesFile marks a fix that creates its file.
	CapCreatesFile
)

// Has reports whether all capabilities in other are set.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

// SourceFile identifies a physical text file. It may carry a snapshot of the
// file's current text; line counting then uses the snapshot instead of the
// disk.
type SourceFile struct {
	// Path is the file path as given by the caller.
	Path string

	content     []byte
	hasSnapshot bool
}

// NewSourceFile returns a SourceFile whose text is read from disk on demand.
func NewSourceFile(path string) SourceFile {
	return SourceFile{Path: path}
}

// NewSourceFileWithContent returns a SourceFile backed by an in-memory
// snapshot of its current text.
func NewSourceFileWithContent(path string, content []byte) SourceFile {
	return SourceFile{Path: path, content: content, hasSnapshot: true}
}

// Snapshot returns the in-memory text, if any.
func (f SourceFile) Snapshot() ([]byte, bool) {
	return f.content, f.hasSnapshot
}

// String returns the path.
func (f SourceFile) String() string {
	return f.Path
}

func (f SourceFile) lineCount() (int, error) {
	if f.hasSnapshot {
		return fsutil.CountContentLines(f.content), nil
	}
	n, err := fsutil.CountLines(f.Path)
	if err != nil {
		return 0, fmt.Errorf("%w: count lines: %w", ErrIOFailure, err)
	}
	return n, nil
}

// Fix is an immutable textual or whole-file change against one file.
// Build fixes with the constructor functions; the zero value is invalid.
type Fix struct {
	kind       Kind
	file       SourceFile
	from       int
	to         int
	fromColumn int
	toColumn   int
	changes    string
	hasChanges bool
	fileType   FileType
	caps       Capability
}

// Kind returns the fix variant.
func (f Fix) Kind() Kind { return f.kind }

// File returns the affected file.
func (f Fix) File() SourceFile { return f.file }

// Path returns the affected file's path.
func (f Fix) Path() string { return f.file.Path }

// From returns the first affected line (1-based).
func (f Fix) From() int { return f.from }

// To returns the last affected line (1-based, inclusive). For insertions it
// is From()-1.
func (f Fix) To() int { return f.to }

// FromColumn returns the 1-based start column on line From (inclusive).
// It is 0 for variants without columns.
func (f Fix) FromColumn() int { return f.fromColumn }

// ToColumn returns the 1-based end column on line To (exclusive).
// It is 0 for variants without columns.
func (f Fix) ToColumn() int { return f.toColumn }

// Changes returns the replacement text. The boolean is false for pure
// deletions, which carry no replacement.
func (f Fix) Changes() (string, bool) { return f.changes, f.hasChanges }

// FileType returns the file type tag of a CreateFile fix.
func (f Fix) FileType() FileType { return f.fileType }

// Capabilities returns the declared patchset constraints.
func (f Fix) Capabilities() Capability { return f.caps }

// DeletesFile reports whether the fix removes its file.
func (f Fix) DeletesFile() bool { return f.caps.Has(CapDeletesFile) }

// CreatesFile reports whether the fix creates its file.
func (f Fix) CreatesFile() bool { return f.caps.Has(CapCreatesFile) }

// RequiresOwnPatchset reports whether the fix must be emitted alone.
func (f Fix) RequiresOwnPatchset() bool { return f.DeletesFile() || f.CreatesFile() }

// IsInsertion reports whether the fix is a zero-height marker.
func (f Fix) IsInsertion() bool { return f.to < f.from }

// IsTextual reports whether the fix edits text rather than a whole file entry.
func (f Fix) IsTextual() bool { return !f.RequiresOwnPatchset() }

// String returns a short description such as "delete-lines [2,4] build.gradle".
func (f Fix) String() string {
	if f.kind == KindReplaceRange {
		return fmt.Sprintf("%s [%d:%d,%d:%d] %s", f.kind, f.from, f.fromColumn, f.to, f.toColumn, f.file.Path)
	}
	return fmt.Sprintf("%s [%d,%d] %s", f.kind, f.from, f.to, f.file.Path)
}

// ReplaceRange replaces the text from column fromCol on line fromLine up to,
// but not including, column toCol on line toLine. Columns are 1-based and
// count runes.
func ReplaceRange(file SourceFile, fromLine, fromCol, toLine, toCol int, changes string) (Fix, error) {
	invalid := func(reason string) (Fix, error) {
		return Fix{}, &InvalidRangeError{Kind: KindReplaceRange, File: file.Path, From: fromLine, To: toLine, Reason: reason}
	}
	switch {
	case fromLine < 1:
		return invalid("start line must be >= 1")
	case toLine < fromLine:
		return invalid("end line before start line")
	case fromCol < 1 || toCol < 1:
		return invalid("columns must be >= 1")
	case fromLine == toLine && toCol < fromCol:
		return invalid("end column before start column")
	}

	return Fix{
		kind:       KindReplaceRange,
		file:       file,
		from:       fromLine,
		to:         toLine,
		fromColumn: fromCol,
		toColumn:   toCol,
		changes:    changes,
		hasChanges: true,
	}, nil
}

// DeleteLines removes lines from..to entirely.
func DeleteLines(file SourceFile, from, to int) (Fix, error) {
	if from < 1 || to < from {
		return Fix{}, &InvalidRangeError{
			Kind: KindDeleteLines, File: file.Path, From: from, To: to,
			Reason: "need 1 <= from <= to",
		}
	}
	return Fix{kind: KindDeleteLines, file: file, from: from, to: to}, nil
}

// ReplaceWholeFile replaces every line of the file with changes. The file's
// line count is taken now, from its snapshot or from disk.
func ReplaceWholeFile(file SourceFile, changes string) (Fix, error) {
	n, err := file.lineCount()
	if err != nil {
		return Fix{}, err
	}
	return Fix{
		kind:       KindReplaceWholeFile,
		file:       file,
		from:       1,
		to:         n,
		changes:    changes,
		hasChanges: true,
	}, nil
}

// InsertAfter inserts changes immediately after line afterLine. An afterLine
// of 0 inserts at the top of the file.
func InsertAfter(file SourceFile, afterLine int, changes string) (Fix, error) {
	if afterLine < 0 {
		return Fix{}, &InvalidRangeError{
			Kind: KindInsertAfter, File: file.Path, From: afterLine + 1, To: afterLine,
			Reason: "anchor line must be >= 0",
		}
	}
	return insertion(KindInsertAfter, file, afterLine+1, changes), nil
}

// InsertBefore inserts changes immediately before line beforeLine.
func InsertBefore(file SourceFile, beforeLine int, changes string) (Fix, error) {
	if beforeLine < 1 {
		return Fix{}, &InvalidRangeError{
			Kind: KindInsertBefore, File: file.Path, From: beforeLine, To: beforeLine - 1,
			Reason: "anchor line must be >= 1",
		}
	}
	return insertion(KindInsertBefore, file, beforeLine, changes), nil
}

func insertion(kind Kind, file SourceFile, from int, changes string) Fix {
	return Fix{
		kind:       kind,
		file:       file,
		from:       from,
		to:         from - 1,
		changes:    changes,
		hasChanges: true,
	}
}

// DeleteFile removes the file. Its extent covers every line; a symbolic link
// counts as exactly one line and is never followed.
func DeleteFile(file SourceFile) (Fix, error) {
	isLink, err := fsutil.IsSymlink(file.Path)
	if err != nil {
		return Fix{}, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}

	n := 1
	if !isLink {
		if n, err = file.lineCount(); err != nil {
			return Fix{}, err
		}
	}

	return Fix{
		kind: KindDeleteFile,
		file: file,
		from: 1,
		to:   n,
		caps: CapDeletesFile,
	}, nil
}

// CreateFile creates a file that does not exist yet. For FileTypeSymlink,
// changes is the link target. No file system access happens here.
func CreateFile(file SourceFile, changes string, fileType FileType) Fix {
	return Fix{
		kind:       KindCreateFile,
		file:       file,
		from:       1,
		to:         0,
		changes:    changes,
		hasChanges: true,
		fileType:   fileType,
		caps:       CapCreatesFile,
	}
}
