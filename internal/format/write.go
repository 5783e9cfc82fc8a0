package format

import (
	"bytes"
	"strconv"

	"ssc/internal/source"
)

// Writer accumulates formatted output and provides helpers for copying source
// fragments.
type Writer struct {
	sf  *source.File
	buf []byte
}

// NewWriter creates a new formatting writer.
func NewWriter(sf *source.File) *Writer {
	return &Writer{
		sf:  sf,
		buf: make([]byte, 0, len(sf.Content)),
	}
}

// Bytes returns the accumulated output, ending with exactly one newline
// unless empty.
func (w *Writer) Bytes() []byte {
	out := bytes.TrimRight(w.buf, " \t\r\n")
	if len(out) == 0 {
		return out
	}
	return append(out, '\n')
}

// CopyRange copies source bytes [start, end) verbatim.
func (w *Writer) CopyRange(start, end int) {
	start = clampToContent(start, len(w.sf.Content))
	end = clampToContent(end, len(w.sf.Content))
	if start < end {
		w.buf = append(w.buf, w.sf.Content[start:end]...)
	}
}

// CopySpan copies the source text of sp verbatim.
func (w *Writer) CopySpan(sp source.Span) {
	w.CopyRange(int(sp.Start), int(sp.End))
}

// Source returns the source text of sp.
func (w *Writer) Source(sp source.Span) []byte {
	n := len(w.sf.Content)
	start := clampToContent(int(sp.Start), n)
	return w.sf.Content[start:max(clampToContent(int(sp.End), n), start)]
}

func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

func (w *Writer) WriteInt(v int64) {
	w.buf = strconv.AppendInt(w.buf, v, 10)
}

func clampToContent(pos, length int) int {
	if pos < 0 {
		return 0
	}
	if pos > length {
		return length
	}
	return pos
}
