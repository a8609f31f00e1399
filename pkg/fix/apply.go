package fix

import (
	"fmt"
	"slices"
	"strings"
)

// Buffer is a mutable line buffer over file content. Lines are split on
// '\n' only, so a '\r' stays part of its line. Whether the content ended
// with a newline is remembered and restored by Bytes.
type Buffer struct {
	lines           []string
	trailingNewline bool
}

// NewBuffer splits content into lines. Empty content has no lines.
func NewBuffer(content []byte) *Buffer {
	text := string(content)
	return &Buffer{
		lines:           splitText(text),
		trailingNewline: text == "" || strings.HasSuffix(text, "\n"),
	}
}

// Lines returns the current lines without terminators.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Bytes joins the lines back into file content.
func (b *Buffer) Bytes() []byte {
	if len(b.lines) == 0 {
		return []byte{}
	}
	out := strings.Join(b.lines, "\n")
	if b.trailingNewline {
		out += "\n"
	}
	return []byte(out)
}

// splitText splits text into lines, treating one trailing newline as a
// terminator rather than the start of an extra empty line.
func splitText(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Apply applies fixes to content and returns the corrected content. The
// fixes must not conflict (see Resolve); they are applied in ApplyOrder
// against the original line numbers. Whole-file fixes are rejected with
// ErrNotTextual and positions outside the content with InvalidRangeError.
// content is not modified.
func Apply(content []byte, fixes []Fix) ([]byte, error) {
	buf := NewBuffer(content)
	for _, f := range ApplyOrder(fixes) {
		if err := buf.apply(f); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func (b *Buffer) apply(f Fix) error {
	switch f.kind {
	case KindReplaceRange:
		return b.replaceRange(f)
	case KindDeleteLines:
		if err := b.checkRange(f); err != nil {
			return err
		}
		b.lines = slices.Delete(b.lines, f.from-1, f.to)
		return nil
	case KindReplaceWholeFile:
		if err := b.checkRange(f); err != nil {
			return err
		}
		b.lines = slices.Replace(b.lines, f.from-1, f.to, splitText(f.changes)...)
		if f.changes != "" {
			b.trailingNewline = strings.HasSuffix(f.changes, "\n")
		}
		return nil
	case KindInsertAfter, KindInsertBefore:
		if f.from < 1 || f.from-1 > len(b.lines) {
			return b.outOfRange(f)
		}
		inserted := splitText(f.changes)
		if len(inserted) == 0 {
			inserted = []string{""}
		}
		b.lines = slices.Insert(b.lines, f.from-1, inserted...)
		return nil
	case KindDeleteFile, KindCreateFile:
		return fmt.Errorf("%w: %s", ErrNotTextual, f)
	default:
		return fmt.Errorf("unknown fix kind %s", f.kind)
	}
}

func (b *Buffer) replaceRange(f Fix) error {
	if err := b.checkRange(f); err != nil {
		return err
	}

	first := []rune(b.lines[f.from-1])
	last := []rune(b.lines[f.to-1])
	if f.fromColumn-1 > len(first) || f.toColumn-1 > len(last) {
		return &InvalidRangeError{
			Kind: f.kind, File: f.Path(), From: f.from, To: f.to,
			Reason: fmt.Sprintf("columns %d..%d past end of line", f.fromColumn, f.toColumn),
		}
	}

	spliced := string(first[:f.fromColumn-1]) + f.changes + string(last[f.toColumn-1:])
	b.lines = slices.Replace(b.lines, f.from-1, f.to, strings.Split(spliced, "\n")...)
	return nil
}

func (b *Buffer) checkRange(f Fix) error {
	if f.from < 1 || f.to > len(b.lines) || f.to < f.from-1 {
		return b.outOfRange(f)
	}
	return nil
}

func (b *Buffer) outOfRange(f Fix) error {
	return &InvalidRangeError{
		Kind: f.kind, File: f.Path(), From: f.from, To: f.to,
		Reason: fmt.Sprintf("content has %d lines", len(b.lines)),
	}
}

// Result is the outcome of ApplyResolved.
type Result struct {
	// Content is the corrected text.
	Content []byte

	// Applied lists the fixes that were applied, in SortFixes order.
	Applied []Fix

	// Conflicts lists the fixes skipped because they overlapped an applied one.
	Conflicts []*ConflictError
}

// ApplyResolved resolves conflicts among shareable fixes and applies the
// survivors to content. Exclusive fixes are an error.
func ApplyResolved(content []byte, fixes []Fix) (Result, error) {
	accepted, conflicts := Resolve(fixes)
	out, err := Apply(content, accepted)
	if err != nil {
		return Result{}, err
	}
	return Result{Content: out, Applied: accepted, Conflicts: conflicts}, nil
}
