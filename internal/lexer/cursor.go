package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"ssc/internal/source"
)

// Cursor walks the bytes of one .ss file. All positions are byte offsets
// into File.Content; Limit is exclusive.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32
}

// NewCursor places a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte, 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Bump consumes one byte and returns it, 0 at EOF.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// BumpWhile consumes bytes while pred holds and reports how many it took.
func (c *Cursor) BumpWhile(pred func(byte) bool) int {
	from := c.Off
	for !c.EOF() && pred(c.File.Content[c.Off]) {
		c.Off++
	}
	return int(c.Off - from)
}

// AtPair reports whether the next two bytes are a then b: `->` and `//`
// are the only two-byte lexemes of the language.
func (c *Cursor) AtPair(a, b byte) bool {
	return c.Off+1 < c.Limit && c.File.Content[c.Off] == a && c.File.Content[c.Off+1] == b
}

// EatPair consumes a then b when both are next.
func (c *Cursor) EatPair(a, b byte) bool {
	if !c.AtPair(a, b) {
		return false
	}
	c.Off += 2
	return true
}

// SkipLine consumes everything up to, not including, the next '\n'.
func (c *Cursor) SkipLine() {
	c.BumpWhile(func(b byte) bool { return b != '\n' })
}

// PeekRune decodes the rune at the cursor; size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.File.Content[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// BumpRune consumes one whole rune; invalid UTF-8 advances by one byte.
func (c *Cursor) BumpRune() {
	_, sz := c.PeekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	c.Off += usz
}

// Mark remembers a position so a lexeme's span can be cut later.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// SpanFrom is the span from m to the cursor.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// TextFrom is the source text from m to the cursor.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[uint32(m):c.Off])
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// Finish jumps to EOF; used once the rest of the file is unusable.
func (c *Cursor) Finish() { c.Off = c.Limit }
