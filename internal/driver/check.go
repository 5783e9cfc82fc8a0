package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"ssc/internal/ast"
	"ssc/internal/diag"
	"ssc/internal/diagfmt"
	"ssc/internal/observ"
	"ssc/internal/project"
	"ssc/internal/sema"
	"ssc/internal/source"
	"ssc/internal/trace"
)

// Options configure Check and CheckDir.
type Options struct {
	MaxDiagnostics int
	Policy         sema.Policy
	// Timer, when set, records load/parse/check phases.
	Timer *observ.Timer
	// Cache, when set, short-circuits files whose outcome is known.
	Cache    *DiskCache
	Progress ProgressSink
	// Jobs bounds CheckDir parallelism; 0 means GOMAXPROCS.
	Jobs int
	// Exclude filters CheckDir files by path relative to the directory.
	Exclude func(rel string) bool
}

// CheckResult is the outcome of checking one file as an independent module.
type CheckResult struct {
	Path    string
	FileSet *source.FileSet
	// File is nil when the file could not be loaded.
	File *source.File
	// Builder and FileID are unset on a cache hit.
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
	// Sema is nil when parsing failed or the outcome came from the cache.
	Sema        *sema.Result
	Definitions []diagfmt.Definition
	Cached      bool
}

// OK reports whether the file checked without errors.
func (r *CheckResult) OK() bool {
	return r != nil && r.Bag != nil && !r.Bag.HasErrors()
}

// Check loads path and runs the pipeline over it. IO failures are returned
// as errors; language errors end up in the result's Bag.
func Check(ctx context.Context, path string, opts Options) (*CheckResult, error) {
	fs := source.NewFileSetWithBase(filepath.Dir(path))
	idx := opts.Timer.Begin("load")
	fileID, err := fs.Load(path)
	opts.Timer.End(idx, "")
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return CheckLoaded(ctx, fs, fileID, opts), nil
}

// CheckLoaded runs lex → parse → check over a file already in fs.
func CheckLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *CheckResult {
	file := fs.Get(fileID)
	res := &CheckResult{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check_file", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", file.Path)
	defer span.End("")

	var key project.Digest
	if opts.Cache != nil {
		key = CacheKey(file.Hash, opts.Policy)
		var payload DiskPayload
		ok, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(tracer, trace.ScopeDriver, "cache_error", span.ID(), err.Error())
		}
		if ok {
			res.Cached = true
			res.Definitions = payload.restore(fileID, res.Bag)
			span.WithExtra("cache", "hit")
			emit(opts.Progress, Event{File: file.Path, Stage: StageCheck, Status: StatusCached})
			return res
		}
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	started := time.Now()
	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", span.ID())
	idx := opts.Timer.Begin("parse")
	builder, astFile, err := parseFile(fs, file, res.Bag, nil)
	if err != nil {
		// только переполнение MaxDiagnostics
		res.Bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, err.Error()))
	}
	opts.Timer.End(idx, "")
	parseSpan.End("")
	res.Builder, res.FileID = builder, astFile

	if err == nil && !res.Bag.HasErrors() {
		emit(opts.Progress, Event{File: file.Path, Stage: StageCheck, Status: StatusWorking})
		idx = opts.Timer.Begin("check")
		semaRes := sema.Check(builder, astFile, sema.Options{
			Reporter:    &diag.BagReporter{Bag: res.Bag},
			Tracer:      tracer,
			TraceParent: span.ID(),
			Policy:      opts.Policy,
		})
		note := "ok"
		if semaRes.Err != nil {
			note = semaRes.Err.Code().ID()
		}
		opts.Timer.End(idx, note)
		res.Sema = &semaRes
		res.Definitions = diagfmt.DefinitionsFromSema(builder, astFile, &semaRes)
	}
	res.Bag.Sort()

	if opts.Cache != nil {
		payload := newDiskPayload(file.Path, file.Hash, opts.Policy, res.Bag, res.Definitions)
		if err := opts.Cache.Put(key, payload); err != nil {
			trace.Point(tracer, trace.ScopeDriver, "cache_error", span.ID(), err.Error())
		}
	}

	status := StatusDone
	if res.Bag.HasErrors() {
		status = StatusError
		span.WithExtra("result", "fail")
	}
	emit(opts.Progress, Event{File: file.Path, Stage: StageCheck, Status: status, Elapsed: time.Since(started)})
	return res
}
