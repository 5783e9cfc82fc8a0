package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"f : (i64) -> i64\nf(x) = x\n",
	"y : f64\ny = 5\n",
	"id : (i64) -> i64\nid = (x) -> x\n",
	"k : (i64) -> (f64) -> i64\nk(a) = (b) -> a\n",
	"g : (i64, i64) -> i64\ng(a) = a\n",
	"z : i64\nz = w\n",
	"y : f64\ny : i64\ny = 5 // last wins\n",
	"f : ('a) -> 'a\nf(x) = x\n",
	"n = 9223372036854775808\n",
	"f(x, x) = x\n",
	"((((((((((\n",
	"f : (i64 -> \n",
	"é = 1\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.ss файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".ss" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clamp(src))
		return nil
	})
}

func clamp(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
