package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("hello.ss", []byte("x : i64"), 0)
	id2 := fs.Add("hello.ss", []byte("x = 1"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.Lookup("./hello.ss")
	if !ok || latest != id2 {
		t.Fatalf("Lookup = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "x : i64" {
		t.Errorf("first version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.ss", []byte("a\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], want[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	content := "f : (i64) -> i64\nf(x) = x\n"
	id := fs.AddVirtual("f.ss", []byte(content))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"file start", 0, LineCol{Line: 1, Col: 1}},
		{"first line middle", 4, LineCol{Line: 1, Col: 5}},
		{"newline belongs to its line", 16, LineCol{Line: 1, Col: 17}},
		{"second line start", 17, LineCol{Line: 2, Col: 1}},
		{"second line body", 24, LineCol{Line: 2, Col: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestLineAndText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("g.ss", []byte("y : f64\ny = 5"))
	file := fs.Get(id)

	if got := file.Line(1); got != "y : f64" {
		t.Errorf("Line(1) = %q", got)
	}
	if got := file.Line(2); got != "y = 5" {
		t.Errorf("Line(2) = %q", got)
	}
	if got := file.Line(3); got != "" {
		t.Errorf("Line(3) = %q, want empty", got)
	}
	if got := fs.Text(Span{File: id, Start: 4, End: 7}); got != "f64" {
		t.Errorf("Text = %q, want f64", got)
	}
	if got := fs.Text(Span{File: id, Start: 10, End: 100}); got != "= 5" {
		t.Errorf("Text clamp = %q", got)
	}
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"x = 1", 1},
		{"x = 1\n", 1},
		{"x : i64\nx = 1\n", 2},
		{"x : i64\n\nx = 1", 3},
	}
	for _, tt := range tests {
		fs := NewFileSet()
		if got := fs.Get(fs.AddVirtual("m.ss", []byte(tt.content))).LineCount(); got != tt.want {
			t.Errorf("LineCount(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}

func TestDisplayPath(t *testing.T) {
	fs := NewFileSetWithBase("/work/proj")
	file := fs.Get(fs.AddVirtual("/work/proj/src/lib/m.ss", nil))
	long := fs.Get(fs.AddVirtual("/work/proj/some/deeply/nested/directory/tree/m.ss", nil))

	tests := []struct {
		file  *File
		style PathStyle
		want  string
	}{
		{file, PathAsLoaded, "/work/proj/src/lib/m.ss"},
		{file, PathAbsolute, "/work/proj/src/lib/m.ss"},
		{file, PathRelative, "src/lib/m.ss"},
		{file, PathBase, "m.ss"},
		{file, PathAuto, "/work/proj/src/lib/m.ss"},
		{long, PathAuto, "m.ss"},
	}
	for _, tt := range tests {
		if got := fs.DisplayPath(tt.file, tt.style); got != tt.want {
			t.Errorf("DisplayPath(%s, %d) = %q, want %q", tt.file.Path, tt.style, got, tt.want)
		}
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.ss")
	data := []byte("\xEF\xBB\xBFx : i64\r\nx = 1\r\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "x : i64\nx = 1\n" {
		t.Errorf("content = %q", file.Content)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", file.Flags)
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 5, End: 20}) {
		t.Errorf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files = %v, want %v", got, a)
	}
	if !a.Contains(10) || a.Contains(20) {
		t.Error("Contains must be half-open")
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("x")
	b := in.Intern("x")
	c := in.Intern("y")
	if a != b || a == c {
		t.Fatalf("interning broken: %d %d %d", a, b, c)
	}
	if s, ok := in.Lookup(c); !ok || s != "y" {
		t.Errorf("Lookup = %q, %v", s, ok)
	}
	if in.Intern("") != NoStringID {
		t.Error("empty string must map to NoStringID")
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("unknown id must not resolve")
	}
}
