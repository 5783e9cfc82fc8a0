package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	globalSeq   atomic.Uint64
	globalSpans atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return globalSeq.Add(1) }

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 { return globalSpans.Add(1) }

// getGoroutineID extracts the current goroutine ID using runtime.Stack.
func getGoroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	// "goroutine 123 [running]:\n..."
	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return 0
	}
	buf = buf[len(prefix):]
	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		return 0
	}
	gid, err := strconv.ParseUint(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span provides begin/end tracking of one logical operation.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

// Begin starts a new span and emits SpanBegin event.
// parent is the parent span ID (0 if root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop, started: time.Now()}
	}

	id := NextSpanID()
	gid := getGoroutineID()
	now := time.Now()

	t.Emit(&Event{
		Time:     now,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   id,
		ParentID: parent,
		GID:      gid,
		Name:     name,
	})

	return &Span{
		tracer:   t,
		id:       id,
		parentID: parent,
		gid:      gid,
		scope:    scope,
		name:     name,
		started:  now,
	}
}

// End emits SpanEnd event and returns the duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	dur := time.Since(s.started)
	if s.tracer == nil || !s.tracer.Enabled() {
		return dur
	}
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	return dur
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for disabled spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name string, parent uint64, detail string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      getGoroutineID(),
		Name:     name,
		Detail:   detail,
	})
}

// Fail emits a failure point. Failures pass every level above off.
func Fail(t Tracer, scope Scope, name string, parent uint64, detail string) {
	if t == nil || !t.Enabled() {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      getGoroutineID(),
		Name:     name,
		Detail:   detail,
		Failed:   true,
	})
}
