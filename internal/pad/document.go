// internal/pad/document.go

// Package pad implements the scratch-pad demo host for the undo engine: a
// small line-oriented document, reversible edit actions built on it, a
// clipboard, and a tcell UI whose status line is driven by engine snapshots.
package pad

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Position addresses a point in the document. Col counts runes, not bytes.
type Position struct {
	Line int
	Col  int
}

// Document is a line-oriented byte-slice buffer. Mutating methods return
// the information an undo action needs to reverse them: InsertAt reports
// the end position of the inserted text, DeleteRange reports the removed
// text.
type Document struct {
	lines [][]byte
}

// NewDocument creates a document holding a single empty line.
func NewDocument() *Document {
	return &Document{lines: [][]byte{[]byte("")}}
}

// LineCount returns the number of lines; always at least 1.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the bytes of line index.
func (d *Document) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(d.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(d.lines)-1)
	}
	return d.lines[index], nil
}

// Lines returns the underlying line slices. Callers must not mutate them.
func (d *Document) Lines() [][]byte {
	return d.lines
}

// String renders the whole document with newline separators.
func (d *Document) String() string {
	var buf bytes.Buffer
	for i, line := range d.lines {
		buf.Write(line)
		if i < len(d.lines)-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.String()
}

// Clamp snaps pos into the valid range of the document.
func (d *Document) Clamp(pos Position) Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(d.lines) {
		pos.Line = len(d.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if max := utf8.RuneCount(d.lines[pos.Line]); pos.Col > max {
		pos.Col = max
	}
	return pos
}

// byteOffset converts a rune column to a byte offset within line, clamping
// past-the-end columns to the line length.
func byteOffset(line []byte, col int) int {
	offset := 0
	for i := 0; i < col && offset < len(line); i++ {
		_, size := utf8.DecodeRune(line[offset:])
		offset += size
	}
	return offset
}

// InsertAt inserts text (which may contain newlines) at pos and returns the
// position just after the inserted text.
func (d *Document) InsertAt(pos Position, text []byte) (Position, error) {
	pos = d.Clamp(pos)
	if len(text) == 0 {
		return pos, nil
	}

	line := d.lines[pos.Line]
	offset := byteOffset(line, pos.Col)
	segments := bytes.Split(text, []byte("\n"))

	tail := make([]byte, len(line[offset:]))
	copy(tail, line[offset:])
	head := append([]byte{}, line[:offset]...)

	if len(segments) == 1 {
		d.lines[pos.Line] = append(append(head, segments[0]...), tail...)
		return Position{Line: pos.Line, Col: pos.Col + utf8.RuneCount(segments[0])}, nil
	}

	d.lines[pos.Line] = append(head, segments[0]...)
	inserted := make([][]byte, len(segments)-1)
	for i := 1; i < len(segments); i++ {
		inserted[i-1] = append([]byte{}, segments[i]...)
	}
	end := Position{
		Line: pos.Line + len(inserted),
		Col:  utf8.RuneCount(inserted[len(inserted)-1]),
	}
	inserted[len(inserted)-1] = append(inserted[len(inserted)-1], tail...)

	rest := make([][]byte, len(d.lines[pos.Line+1:]))
	copy(rest, d.lines[pos.Line+1:])
	d.lines = append(append(d.lines[:pos.Line+1], inserted...), rest...)
	return end, nil
}

// DeleteRange removes the text between start (inclusive) and end (exclusive)
// and returns it, newlines included, so the deletion can be reversed by
// re-inserting it at start.
func (d *Document) DeleteRange(start, end Position) ([]byte, error) {
	start = d.Clamp(start)
	end = d.Clamp(end)
	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col) {
		start, end = end, start
	}
	if start == end {
		return nil, nil
	}

	startLine := d.lines[start.Line]
	startOff := byteOffset(startLine, start.Col)

	if start.Line == end.Line {
		endOff := byteOffset(startLine, end.Col)
		removed := append([]byte{}, startLine[startOff:endOff]...)
		d.lines[start.Line] = append(startLine[:startOff], startLine[endOff:]...)
		return removed, nil
	}

	endLine := d.lines[end.Line]
	endOff := byteOffset(endLine, end.Col)

	var removed bytes.Buffer
	removed.Write(startLine[startOff:])
	removed.WriteByte('\n')
	for i := start.Line + 1; i < end.Line; i++ {
		removed.Write(d.lines[i])
		removed.WriteByte('\n')
	}
	removed.Write(endLine[:endOff])

	d.lines[start.Line] = append(startLine[:startOff], endLine[endOff:]...)
	d.lines = append(d.lines[:start.Line+1], d.lines[end.Line+1:]...)
	return removed.Bytes(), nil
}

// PrevBoundary steps pos back by one grapheme cluster, so that a backspace
// removes a full cluster (an emoji with modifiers, a combined character)
// rather than a single rune. At the start of a line it moves to the end of
// the previous line; at the start of the document it returns pos unchanged.
func (d *Document) PrevBoundary(pos Position) Position {
	pos = d.Clamp(pos)
	if pos.Col == 0 {
		if pos.Line == 0 {
			return pos
		}
		return Position{Line: pos.Line - 1, Col: utf8.RuneCount(d.lines[pos.Line-1])}
	}

	gr := uniseg.NewGraphemes(string(d.lines[pos.Line]))
	runes := 0
	for gr.Next() {
		next := runes + len(gr.Runes())
		if next >= pos.Col {
			break
		}
		runes = next
	}
	return Position{Line: pos.Line, Col: runes}
}
