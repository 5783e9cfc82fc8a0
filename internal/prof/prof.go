package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options name the output files of a profiling session. Empty paths are
// skipped.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Enabled reports whether any profile was requested.
func (o Options) Enabled() bool {
	return o.CPU != "" || o.Mem != "" || o.Trace != ""
}

// Session is an active set of profiles started by Start.
type Session struct {
	cpuFile   *os.File
	traceFile *os.File
	memPath   string
}

// Start enables CPU profiling and runtime tracing as requested. The heap
// profile is written by Stop.
func Start(opts Options) (*Session, error) {
	s := &Session{memPath: opts.Mem}
	if opts.CPU != "" {
		f, err := os.Create(opts.CPU)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpuFile = f
	}
	if opts.Trace != "" {
		f, err := os.Create(opts.Trace)
		if err != nil {
			s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop ends the session and writes the heap profile. Calling Stop on a nil
// or already stopped session is a no-op.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	var errs []error
	if err := s.stopCPU(); err != nil {
		errs = append(errs, err)
	}
	if s.traceFile != nil {
		trace.Stop()
		if err := s.traceFile.Close(); err != nil {
			errs = append(errs, err)
		}
		s.traceFile = nil
	}
	if s.memPath != "" {
		if err := writeMem(s.memPath); err != nil {
			errs = append(errs, fmt.Errorf("heap profile: %w", err))
		}
		s.memPath = ""
	}
	return errors.Join(errs...)
}

func (s *Session) stopCPU() error {
	if s.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpuFile.Close()
	s.cpuFile = nil
	return err
}

func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
