package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSession(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	if !opts.Enabled() || (Options{}).Enabled() {
		t.Fatal("Enabled mismatch")
	}
	s, err := Start(opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{opts.CPU, opts.Mem, opts.Trace} {
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s: %v", filepath.Base(p), err)
		}
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
	var nilSession *Session
	if err := nilSession.Stop(); err != nil {
		t.Errorf("nil Stop: %v", err)
	}
}

func TestStartBadPath(t *testing.T) {
	if _, err := Start(Options{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")}); err == nil {
		t.Fatal("expected an error for an unwritable path")
	}
}
