package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"ssc/internal/diag"
	"ssc/internal/source"
)

func mismatchBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.AddVirtual("m.ss", []byte("y : f64\ny = 5\n"))
	d := diag.NewError(diag.SemaTypeMismatch, source.Span{File: file, Start: 8, End: 13},
		"type mismatch in `y`: expected `f64`, found `i64`").
		WithNote(source.Span{File: file, Start: 0, End: 7}, "declared here")
	bag := diag.NewBag(10)
	bag.Add(d)
	return bag, fs
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := mismatchBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})

	want := strings.Join([]string{
		"m.ss:2:1: ERROR SEM3015: type mismatch in `y`: expected `f64`, found `i64`",
		" 2 | y = 5",
		"   | ^~~~~",
		"  note: m.ss:1:1: declared here",
		" 1 | y : f64",
		"   | ^~~~~~~",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("output mismatch:\n--- got\n%s--- want\n%s", got, want)
	}
}

func TestPrettyContextAndNotesToggle(t *testing.T) {
	bag, fs := mismatchBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 2})
	out := buf.String()
	if !strings.Contains(out, " 1 | y : f64") {
		t.Errorf("context line missing:\n%s", out)
	}
	if strings.Contains(out, "note:") {
		t.Errorf("notes must be hidden unless requested:\n%s", out)
	}
	if strings.Contains(out, " 3 |") {
		t.Errorf("the trailing newline must not produce an extra line:\n%s", out)
	}
}

func TestPrettyColor(t *testing.T) {
	bag, fs := mismatchBag(t)

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escape codes")
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/test.ss", []byte("x = 1\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "Test warning"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.ss:1:1"},
		{"Relative path", PathModeRelative, "src/test.ss:1:1"},
		{"Basename only", PathModeBasename, "test.ss:1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "WARNING LEX1001") {
				t.Errorf("Expected severity and code in output:\n%s", out)
			}
		})
	}
}

func TestUnderlineWideRunes(t *testing.T) {
	tests := []struct {
		line       string
		start, end uint32
		pad, marks string
	}{
		{"x = w", 5, 6, "    ", "^"},
		{"\tx = w", 6, 7, "\t    ", "^"},
		{"界 = 12", 7, 9, "     ", "^~"},
		{"y = 5", 1, 1, "", "^"},
	}
	for _, tt := range tests {
		pad, marks := underline(tt.line, tt.start, tt.end)
		if pad != tt.pad || marks != tt.marks {
			t.Errorf("underline(%q, %d, %d) = %q, %q; want %q, %q",
				tt.line, tt.start, tt.end, pad, marks, tt.pad, tt.marks)
		}
	}
}

func TestClip(t *testing.T) {
	if got := clip("abcdefgh", 0); got != "abcdefgh" {
		t.Errorf("width 0 must not clip, got %q", got)
	}
	if got := clip("abcdefgh", 5); got != "abcd…" {
		t.Errorf("clip = %q", got)
	}
}
