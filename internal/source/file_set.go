package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every .ss file of one check run and turns spans into
// line/column positions and display paths.
//
// Loading is not concurrency-safe: CheckDir loads all files first and the
// parallel checkers only read.
type FileSet struct {
	files  []File
	latest map[string]FileID // нормализованный путь -> последняя версия
	base   string            // относительно чего печатаем пути
}

func NewFileSet() *FileSet { return NewFileSetWithBase("") }

// NewFileSetWithBase creates a FileSet that displays relative paths against
// base; an empty base means the working directory.
func NewFileSetWithBase(base string) *FileSet {
	return &FileSet{latest: make(map[string]FileID), base: base}
}

// BaseDir is the directory relative paths are computed against.
func (fs *FileSet) BaseDir() string {
	if fs.base != "" {
		return fs.base
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Add registers content under path and returns a fresh FileID. Adding the
// same path again makes a new version; Lookup returns the newest.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(n)
	path = normalizePath(path)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    path,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fs.latest[path] = id
	return id
}

// Load reads a .ss file from disk. A UTF-8 BOM is dropped and CRLF line
// endings become LF before the content is indexed.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, hadBOM := removeBOM(raw)
	if hadBOM {
		flags |= FileHadBOM
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual registers in-memory source (tests, stdin).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

func (fs *FileSet) Get(id FileID) *File { return &fs.files[id] }

// Lookup returns the newest version of path.
func (fs *FileSet) Lookup(path string) (FileID, bool) {
	id, ok := fs.latest[normalizePath(path)]
	return id, ok
}

// Resolve converts a span into 1-based line and byte column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	idx := fs.files[span.File].LineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}

// Text returns the source under span, clamped to the file.
func (fs *FileSet) Text(span Span) string {
	if int(span.File) >= len(fs.files) {
		return ""
	}
	content := fs.files[span.File].Content
	end := min(int(span.End), len(content))
	start := min(int(span.Start), end)
	return string(content[start:end])
}

// PathStyle selects how a file's path is displayed.
type PathStyle uint8

const (
	PathAsLoaded PathStyle = iota
	PathAbsolute
	PathRelative
	PathBase
	// PathAuto keeps short or relative paths and shortens long absolute ones
	// to the base name.
	PathAuto
)

// DisplayPath renders f's path in the given style. Failures to make a path
// absolute or relative fall back to the path as loaded.
func (fs *FileSet) DisplayPath(f *File, style PathStyle) string {
	switch style {
	case PathAbsolute:
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case PathRelative:
		if rel, err := RelativePath(f.Path, fs.BaseDir()); err == nil {
			return rel
		}
	case PathBase:
		return BaseName(f.Path)
	case PathAuto:
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return BaseName(f.Path)
		}
	}
	return f.Path
}

// LineCount is the number of lines in f; a final newline does not start a
// new line.
func (f *File) LineCount() int {
	if len(f.Content) == 0 {
		return 0
	}
	n := len(f.LineIdx) + 1
	if f.Content[len(f.Content)-1] == '\n' {
		n--
	}
	return n
}

// Line returns 1-based line n without its newline, or "" when out of range.
func (f *File) Line(n int) string {
	if n < 1 || n > f.LineCount() {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if n-1 < len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	return string(f.Content[start:end])
}
