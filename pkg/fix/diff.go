package fix

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DevNull is the path used in diff headers for a side that does not exist.
const DevNull = "/dev/null"

// Diff is a unified diff of one file. Created and Deleted diffs compare
// against /dev/null.
type Diff struct {
	Path               string
	Original, Modified []byte
	Hunks              []DiffHunk

	Additions, Deletions int

	Created, Deleted bool
	Symlink          bool // the created or deleted entry is a symlink
}

// DiffHunk is one "@@" section. Starts are 1-based.
type DiffHunk struct {
	OriginalStart, OriginalCount int
	ModifiedStart, ModifiedCount int
	Lines                        []DiffLine
}

type DiffLine struct {
	Kind    DiffLineKind
	Content string // no prefix, no terminator

	// NoNewline is set on the last line of a side lacking a final newline.
	NoNewline bool
}

type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// Changes closer than twice this many lines share a hunk.
const contextLines = 3

// NoNewlineMarker follows a diff line that has no trailing newline.
const NoNewlineMarker = `\ No newline at end of file`

// GenerateDiff diffs original against modified line by line. It returns
// nil when the two are identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	ops := diffLines(string(original), string(modified))
	hunks := groupIntoHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    hunks,
	}
	for _, op := range ops {
		switch op.kind {
		case DiffLineAdd:
			d.Additions++
		case DiffLineRemove:
			d.Deletions++
		}
	}
	return d
}

// CreateDiff returns the diff of creating path with content.
func CreateDiff(path string, content []byte) *Diff {
	d := GenerateDiff(path, nil, content)
	if d == nil {
		d = &Diff{Path: path, Modified: content}
	}
	d.Created = true
	return d
}

// DeleteDiff returns the diff of removing path, which held content.
func DeleteDiff(path string, content []byte) *Diff {
	d := GenerateDiff(path, content, nil)
	if d == nil {
		d = &Diff{Path: path, Original: content}
	}
	d.Deleted = true
	return d
}

// GitHeader returns the "diff --git" header line, followed by a file mode
// line for created and deleted files.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	header := fmt.Sprintf("diff --git a/%s b/%s", path, path)

	mode := "100644"
	if d.Symlink {
		mode = "120000"
	}
	switch {
	case d.Created:
		header += "\nnew file mode " + mode
	case d.Deleted:
		header += "\ndeleted file mode " + mode
	}
	return header
}

// OldName returns the "---" side of the header.
func (d *Diff) OldName() string {
	if d.Created {
		return DevNull
	}
	return "a/" + strings.TrimPrefix(d.Path, "/")
}

// NewName returns the "+++" side of the header.
func (d *Diff) NewName() string {
	if d.Deleted {
		return DevNull
	}
	return "b/" + strings.TrimPrefix(d.Path, "/")
}

// String renders the ---/+++ headers and the hunks, without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- %s\n", d.OldName())
	fmt.Fprintf(&builder, "+++ %s\n", d.NewName())

	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header())
		builder.WriteByte('\n')

		for _, line := range hunk.Lines {
			builder.WriteByte(line.Kind.prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
			if line.NoNewline {
				builder.WriteString(NoNewlineMarker)
				builder.WriteByte('\n')
			}
		}
	}

	return builder.String()
}

// FullString is GitHeader followed by String.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

func (d *Diff) HasChanges() bool {
	return d != nil && (len(d.Hunks) > 0 || d.Created || d.Deleted)
}

// Header returns the "@@ -a,b +c,d @@" line. An empty side is reported at
// the line before it, as diff(1) does.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@", hunkRange(h.OriginalStart, h.OriginalCount), hunkRange(h.ModifiedStart, h.ModifiedCount))
}

func hunkRange(start, count int) string {
	if count == 0 {
		start--
	}
	return fmt.Sprintf("%d,%d", start, count)
}

func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

type diffOp struct {
	kind DiffLineKind
	line string // including its terminator, if any
}

// diffLines computes a line diff by mapping each distinct line (terminator
// included) to one rune and diffing the rune strings.
func diffLines(original, modified string) []diffOp {
	var table []string
	index := make(map[string]rune)

	encode := func(text string) []rune {
		lines := splitKeepTerminators(text)
		out := make([]rune, len(lines))
		for i, line := range lines {
			r, ok := index[line]
			if !ok {
				r = lineRune(len(table))
				index[line] = r
				table = append(table, line)
			}
			out[i] = r
		}
		return out
	}

	a, b := encode(original), encode(modified)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	var ops []diffOp
	for _, d := range dmp.DiffMainRunes(a, b, false) {
		kind := DiffLineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = DiffLineAdd
		case diffmatchpatch.DiffDelete:
			kind = DiffLineRemove
		case diffmatchpatch.DiffEqual:
		}
		for _, r := range d.Text {
			ops = append(ops, diffOp{kind: kind, line: table[runeLine(r)]})
		}
	}
	return ops
}

// Line indexes skip the UTF-16 surrogate block, which does not survive a
// round trip through a Go string.
const (
	surrogateMin  = 0xD800
	surrogateSpan = 0x800
)

func lineRune(i int) rune {
	if i >= surrogateMin {
		i += surrogateSpan
	}
	return rune(i)
}

func runeLine(r rune) int {
	i := int(r)
	if i >= surrogateMin+surrogateSpan {
		i -= surrogateSpan
	}
	return i
}

func splitKeepTerminators(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// groupIntoHunks splits ops into runs of changes and wraps each cluster of
// nearby runs in context.
func groupIntoHunks(ops []diffOp) []DiffHunk {
	type changeRange struct {
		start, end int // indices into ops
	}

	var ranges []changeRange
	for i := 0; i < len(ops); {
		if ops[i].kind == DiffLineContext {
			i++
			continue
		}
		start := i
		for i < len(ops) && ops[i].kind != DiffLineContext {
			i++
		}
		ranges = append(ranges, changeRange{start, i})
	}

	var hunks []DiffHunk
	for i := 0; i < len(ranges); {
		j := i + 1
		for j < len(ranges) && ranges[j].start-ranges[j-1].end <= contextLines*2 {
			j++
		}
		hunks = append(hunks, buildHunk(ops, ranges[i].start, ranges[j-1].end))
		i = j
	}
	return hunks
}

// buildHunk covers ops[changeStart:changeEnd] plus surrounding context.
func buildHunk(ops []diffOp, changeStart, changeEnd int) DiffHunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:start] {
		if op.kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedStart++
		}
	}

	for _, op := range ops[start:end] {
		content, hasTerminator := strings.CutSuffix(op.line, "\n")
		hunk.Lines = append(hunk.Lines, DiffLine{
			Kind:      op.kind,
			Content:   content,
			NoNewline: !hasTerminator,
		})

		switch op.kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.ModifiedCount++
		}
	}

	return hunk
}
