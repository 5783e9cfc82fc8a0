package lexer

import (
	"testing"

	"ssc/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ss", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("reads past EOF must return 0")
	}
}

func TestMarkResetAndSpan(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 || cursor.TextFrom(m) != "ab" {
		t.Fatalf("span = %v, text = %q", sp, cursor.TextFrom(m))
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("Reset did not rewind, Off=%d", cursor.Off)
	}
	cursor.Finish()
	if !cursor.EOF() {
		t.Fatal("Finish must reach EOF")
	}
}

func TestPairsAndRuns(t *testing.T) {
	cursor := NewCursor(createFile("->  // c\nx"))
	if cursor.AtPair('/', '/') || !cursor.EatPair('-', '>') {
		t.Fatal("expected arrow first")
	}
	if n := cursor.BumpWhile(isSpace); n != 2 {
		t.Fatalf("BumpWhile(space) = %d", n)
	}
	if !cursor.AtPair('/', '/') {
		t.Fatal("expected line comment")
	}
	cursor.SkipLine()
	if cursor.Peek() != '\n' {
		t.Fatalf("SkipLine stopped at %q", cursor.Peek())
	}
	cursor.Bump()
	if cursor.EatPair('x', 'y') || cursor.AtPair('x', 0) {
		t.Fatal("pair must not match past the limit")
	}
}

func TestRunes(t *testing.T) {
	cursor := NewCursor(createFile("é\xffz"))
	if r, sz := cursor.PeekRune(); r != 'é' || sz != 2 {
		t.Fatalf("PeekRune = %q/%d", r, sz)
	}
	cursor.BumpRune()
	if _, sz := cursor.PeekRune(); sz != 1 {
		t.Fatalf("invalid byte must decode with size 1, got %d", sz)
	}
	cursor.BumpRune()
	if cursor.Peek() != 'z' {
		t.Fatalf("Peek = %q", cursor.Peek())
	}
	cursor.BumpRune()
	if _, sz := cursor.PeekRune(); sz != 0 {
		t.Fatal("PeekRune at EOF must report size 0")
	}
}
