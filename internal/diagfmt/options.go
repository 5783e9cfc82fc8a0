package diagfmt

import (
	"fmt"
	"strings"

	"ssc/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a flag value onto a PathMode.
func ParsePathMode(s string) (PathMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return PathModeAuto, nil
	case "absolute", "abs":
		return PathModeAbsolute, nil
	case "relative", "rel":
		return PathModeRelative, nil
	case "basename", "base":
		return PathModeBasename, nil
	}
	return PathModeAuto, fmt.Errorf("invalid path mode %q (expected: auto|absolute|relative|basename)", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк контекста до и после основной строки
	PathMode  PathMode
	Width     uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if f == nil {
		return "<unknown>"
	}
	style := source.PathAsLoaded
	switch mode {
	case PathModeAbsolute:
		style = source.PathAbsolute
	case PathModeRelative:
		style = source.PathRelative
	case PathModeBasename:
		style = source.PathBase
	case PathModeAuto:
		style = source.PathAuto
	}
	return fs.DisplayPath(f, style)
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil && int(span.File) < fs.Len() {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
