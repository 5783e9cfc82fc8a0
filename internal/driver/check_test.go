package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"ssc/internal/diag"
	"ssc/internal/observ"
	"ssc/internal/sema"
	"ssc/internal/source"
	"ssc/internal/trace"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func short(r *CheckResult) string {
	return diag.FormatShortDiagnostics(r.Bag.Items(), r.FileSet, false)
}

func TestCheckOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		ok      bool
		short   string
		defs    []string
		semaRan bool
	}{
		{
			name:    "identity",
			src:     "f : (i64) -> i64\nf(x) = x\n",
			ok:      true,
			defs:    []string{"f: (i64) -> i64"},
			semaRan: true,
		},
		{
			name:    "literal mismatch",
			src:     "y : f64\ny = 5\n",
			short:   "error SEM3015 m.ss:2:1 type mismatch in `y`: expected `f64`, found `i64`",
			semaRan: true,
		},
		{
			name:    "unknown identifier",
			src:     "z : i64\nz = w\n",
			short:   "error SEM3005 m.ss:2:5",
			semaRan: true,
		},
		{
			name:    "arity",
			src:     "g : (i64, i64) -> i64\ng(a) = a\n",
			short:   "error SEM3016 m.ss:2:1",
			semaRan: true,
		},
		{
			name:  "syntax error skips checking",
			src:   "f : (i64 -> i64\n",
			short: "error SYN",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, t.TempDir(), "m.ss", tt.src)
			res, err := Check(context.Background(), path, Options{})
			if err != nil {
				t.Fatal(err)
			}
			if res.OK() != tt.ok {
				t.Fatalf("OK() = %v, diagnostics:\n%s", res.OK(), short(res))
			}
			if tt.short != "" && !strings.HasPrefix(short(res), tt.short) {
				t.Errorf("diagnostics = %q, want prefix %q", short(res), tt.short)
			}
			if (res.Sema != nil) != tt.semaRan {
				t.Errorf("sema ran = %v", res.Sema != nil)
			}
			var defs []string
			for _, d := range res.Definitions {
				defs = append(defs, d.Name+": "+d.Type)
			}
			if strings.Join(defs, ";") != strings.Join(tt.defs, ";") {
				t.Errorf("definitions = %v, want %v", defs, tt.defs)
			}
		})
	}
}

func TestCheckMissingFile(t *testing.T) {
	_, err := Check(context.Background(), filepath.Join(t.TempDir(), "nope.ss"), Options{})
	if err == nil || !strings.Contains(err.Error(), "nope.ss") {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckPolicy(t *testing.T) {
	path := writeSource(t, t.TempDir(), "m.ss", "y : f64\ny : i64\ny = 5\n")

	res, err := Check(context.Background(), path, Options{})
	if err != nil || !res.OK() {
		t.Fatalf("last-wins must pass: %v %s", err, short(res))
	}
	res, err = Check(context.Background(), path, Options{Policy: sema.Policy{DuplicateDecls: sema.DuplicateError}})
	if err != nil {
		t.Fatal(err)
	}
	if got := short(res); !strings.HasPrefix(got, "error SEM3002 m.ss:2:1") {
		t.Errorf("diagnostics = %q", got)
	}
}

func TestCheckDiskCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := writeSource(t, dir, "m.ss", "k : (i64) -> (f64) -> f64\nk(a) = (b) -> a\nid : (i64) -> i64\nid = (x) -> x\n")

	first, err := Check(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Fatal("first run cannot be cached")
	}
	second, err := Check(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Sema != nil || second.Builder != nil {
		t.Fatalf("second run must come from the cache: %+v", second)
	}
	withNotes := func(r *CheckResult) string {
		return diag.FormatShortDiagnostics(r.Bag.Items(), r.FileSet, true)
	}
	if withNotes(first) != withNotes(second) {
		t.Errorf("cached diagnostics differ:\n%s\n---\n%s", withNotes(first), withNotes(second))
	}

	strict, err := Check(context.Background(), path, Options{Cache: cache, Policy: sema.Policy{DuplicateDecls: sema.DuplicateError}})
	if err != nil {
		t.Fatal(err)
	}
	if strict.Cached {
		t.Errorf("another policy must miss the cache")
	}

	if err := os.WriteFile(path, []byte("id : (i64) -> i64\nid = (x) -> x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	changed, err := Check(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if changed.Cached || !changed.OK() {
		t.Errorf("edited file must be rechecked")
	}
	again, _ := Check(context.Background(), path, Options{Cache: cache})
	if !again.Cached || len(again.Definitions) != 1 || again.Definitions[0].Type != "(i64) -> i64" {
		t.Errorf("definitions must survive the cache: %+v", again.Definitions)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	dropped, _ := Check(context.Background(), path, Options{Cache: cache})
	if dropped.Cached {
		t.Errorf("DropAll must invalidate entries")
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) final() map[string]Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Status)
	for _, ev := range s.events {
		out[filepath.Base(ev.File)] = ev.Status
	}
	return out
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.ss", "f : (i64) -> i64\nf(x) = x\n")
	writeSource(t, dir, "b.ss", "y : f64\ny = 5\n")
	writeSource(t, dir, "nested/c.ss", "c : i64\nc = 1\n")
	writeSource(t, dir, "vendor/d.ss", "broken (\n")
	writeSource(t, dir, "notes.txt", "not a module")

	sink := &recordingSink{}
	timer := observ.NewTimer()
	exclude := func(rel string) bool { return filepath.ToSlash(rel) == "vendor" }
	fs, results, err := CheckDir(context.Background(), dir, Options{Jobs: 2, Progress: sink, Timer: timer, Exclude: exclude})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	var names []string
	for _, r := range results {
		names = append(names, filepath.ToSlash(strings.TrimPrefix(r.Path, filepath.ToSlash(dir)+"/")))
		if r.FileSet != fs {
			t.Errorf("%s does not share the directory FileSet", r.Path)
		}
	}
	if strings.Join(names, ",") != "a.ss,b.ss,nested/c.ss" {
		t.Errorf("order = %v", names)
	}
	if !results[0].OK() || results[1].OK() || !results[2].OK() {
		t.Errorf("outcomes = %v %v %v", results[0].OK(), results[1].OK(), results[2].OK())
	}

	final := sink.final()
	if final["a.ss"] != StatusDone || final["b.ss"] != StatusError || final["c.ss"] != StatusDone {
		t.Errorf("final statuses = %v", final)
	}
	if _, seen := final["d.ss"]; seen {
		t.Errorf("excluded file reported")
	}

	report := timer.Report()
	if len(report.Phases) != 3 {
		t.Errorf("phases = %+v", report.Phases)
	}
}

func TestCheckDirEmpty(t *testing.T) {
	_, results, err := CheckDir(context.Background(), t.TempDir(), Options{})
	if err != nil || len(results) != 0 {
		t.Fatalf("results = %v, err = %v", results, err)
	}
}

func TestCheckTraceSpans(t *testing.T) {
	path := writeSource(t, t.TempDir(), "m.ss", "f : (i64) -> i64\nf(x) = x\n")
	ring := trace.NewRingTracer(256, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)

	if _, err := Check(ctx, path, Options{}); err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd {
			seen[ev.Name] = true
		}
	}
	for _, name := range []string{"check_file", "parse", "sema", "def:f"} {
		if !seen[name] {
			t.Errorf("no span %q in trace", name)
		}
	}
	if got := ring.DefinitionTypes()["f"]; got != "(i64) -> i64" {
		t.Errorf("def:f ended with type %q", got)
	}
}

func TestAppendTimings(t *testing.T) {
	timer := observ.NewTimer()
	timer.End(timer.Begin("check"), "")

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.SemaTypeMismatch, source.Span{}, "full"))
	AppendTimings(bag, timer, source.Span{})
	if bag.Len() != 2 || bag.Items()[1].Code != diag.ObsTimings {
		t.Fatalf("timings must be appended past the limit, got %d items", bag.Len())
	}
	AppendTimings(nil, timer, source.Span{})
}
