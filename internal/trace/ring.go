package trace

import (
	"io"
	"strings"
	"sync"
)

// RingTracer remembers the most recent events of a check run. Tests and
// `ssc check` post-mortems read it back by span name or scope.
type RingTracer struct {
	mu    sync.RWMutex
	buf   []Event
	next  uint64 // events written so far
	level Level
}

// NewRingTracer keeps up to capacity events; 4096 when capacity <= 0.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmitEvent(ev) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.buf[t.next%uint64(len(t.buf))] = stored
	t.next++
	t.mu.Unlock()
}

// Snapshot returns the retained events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	size := uint64(len(t.buf))
	n := min(t.next, size)
	out := make([]Event, 0, n)
	for i := t.next - n; i < t.next; i++ {
		out = append(out, t.buf[i%size])
	}
	return out
}

// Finished lists span ends of the given scope in completion order.
func (t *RingTracer) Finished(scope Scope) []Event {
	var out []Event
	for _, ev := range t.Snapshot() {
		if ev.Kind == KindSpanEnd && ev.Scope == scope {
			out = append(out, ev)
		}
	}
	return out
}

// DefinitionTypes maps each checked definition to the type label its
// `def:<name>` span ended with. Definitions that failed have no entry.
func (t *RingTracer) DefinitionTypes() map[string]string {
	types := make(map[string]string)
	for _, ev := range t.Finished(ScopeDefinition) {
		name, ok := strings.CutPrefix(ev.Name, "def:")
		if !ok {
			continue
		}
		if ty, ok := ev.Extra["type"]; ok {
			types[name] = ty
		}
	}
	return types
}

// Dump writes the retained events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
