package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeDefinition, false},
		{LevelDetail, ScopeDefinition, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRingTracerCollectsSpans(t *testing.T) {
	ring := NewRingTracer(8, LevelDetail)
	outer := Begin(ring, ScopePass, "check", 0)
	inner := Begin(ring, ScopeDefinition, "def:f", outer.ID())
	Point(ring, ScopeNode, "bind", inner.ID(), "filtered out")
	inner.WithExtra("result", "ok").End("")
	outer.End("done")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].ParentID != events[0].SpanID {
		t.Errorf("inner span must point at outer")
	}
	if events[2].Extra["result"] != "ok" || events[3].Detail != "done" {
		t.Errorf("unexpected end events: %+v %+v", events[2], events[3])
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Fatalf("sequence must increase")
		}
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeNode, name, 0, "")
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("snapshot = %+v", events)
	}
}

func TestRingTracerDefinitionTypes(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	file := Begin(ring, ScopePass, "sema", 0)
	Begin(ring, ScopeDefinition, "def:f", file.ID()).WithExtra("type", "(i64) -> i64").End("")
	Begin(ring, ScopeDefinition, "def:y", file.ID()).End("mismatch")
	file.End("")

	if got := len(ring.Finished(ScopeDefinition)); got != 2 {
		t.Fatalf("finished definitions = %d", got)
	}
	types := ring.DefinitionTypes()
	if len(types) != 1 || types["f"] != "(i64) -> i64" {
		t.Fatalf("definition types = %v", types)
	}
}

func TestFailurePassesErrorLevel(t *testing.T) {
	ring := NewRingTracer(4, LevelError)
	Point(ring, ScopeDriver, "ignored", 0, "")
	Fail(ring, ScopeDefinition, "mismatch", 0, "expected i64")
	events := ring.Snapshot()
	if len(events) != 1 || !events[0].Failed {
		t.Fatalf("events = %+v", events)
	}
}

func TestStreamTracerFormats(t *testing.T) {
	var text bytes.Buffer
	st := NewStreamTracer(&text, LevelPhase, FormatText)
	Begin(st, ScopePass, "parse", 0).WithExtra("b", "2").WithExtra("a", "1").End("ok")
	out := text.String()
	if !strings.Contains(out, "→ parse") || !strings.Contains(out, "← parse (ok) {a=1, b=2}") {
		t.Fatalf("text output:\n%s", out)
	}

	var nd bytes.Buffer
	st = NewStreamTracer(&nd, LevelPhase, FormatNDJSON)
	Point(st, ScopeDriver, "start", 0, "x")
	var decoded map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(nd.Bytes()), &decoded); err != nil {
		t.Fatalf("invalid ndjson %q: %v", nd.String(), err)
	}
	if decoded["name"] != "start" || decoded["scope"] != "driver" || decoded["kind"] != "point" {
		t.Fatalf("decoded = %v", decoded)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop || tr.Enabled() {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	span := Begin(tr, ScopeDriver, "x", 0)
	if span.ID() != 0 {
		t.Fatalf("disabled span must have zero id")
	}
}

func TestNewBothFansOut(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopePass, "load", 0, "")
	multi, ok := tr.(*MultiTracer)
	if !ok {
		t.Fatalf("expected MultiTracer, got %T", tr)
	}
	ring, ok := multi.Ring()
	if !ok || len(ring.Snapshot()) != 1 {
		t.Fatalf("ring did not receive the event")
	}
	if !strings.Contains(buf.String(), "load") {
		t.Fatalf("stream did not receive the event")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must give Nop")
	}
	ring := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
	span := Begin(ring, ScopeDriver, "cmd", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx).SpanID != span.ID() {
		t.Fatal("span not propagated")
	}
}

func TestHeartbeatStops(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	hb := StartHeartbeat(ring, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	hb.Stop()
	hb.Stop()
	n := len(ring.Snapshot())
	time.Sleep(3 * time.Millisecond)
	if len(ring.Snapshot()) != n {
		t.Fatal("heartbeat kept running after Stop")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat must not start on Nop")
	}
}
