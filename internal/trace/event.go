package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
	KindHeartbeat                 // periodic liveness signal
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	ScopeDriver     Scope = iota + 1 // CLI command, directory fan-out
	ScopePass                        // load, lex+parse, check of one file
	ScopeDefinition                  // one definition inside the checker
	ScopeNode                        // inference and unification steps
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeDefinition:
		return "definition"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	GID      uint64            // goroutine ID (for concurrent spans)
	Name     string            // e.g. "parse", "check", "def:main"
	Detail   string            // optional detail message
	Failed   bool              // emitted at LevelError and above
	Extra    map[string]string // extensible key-value pairs
}
