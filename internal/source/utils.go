package source

import (
	"fmt"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

// normalizeCRLF replaces every \r\n with \n and leaves lone \r untouched.
// The flag reports whether anything was replaced.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("line offset overflow: %w", err))
			}
			out = append(out, off)
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// бинпоиск: количество переводов строк строго до off
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo // 0-based

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	lineNo, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: lineNo, Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the absolute, slash-separated form of path.
func AbsolutePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(abs), nil
}

// RelativePath returns path relative to baseDir.
func RelativePath(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// BaseName returns the last element of path.
func BaseName(path string) string {
	return filepath.Base(path)
}
