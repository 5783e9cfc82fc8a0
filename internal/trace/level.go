package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // failures only
	LevelPhase               // driver + pass boundaries
	LevelDetail              // per-definition events
	LevelDebug               // everything including node-level
)

func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level. Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit reports whether an event of the given scope passes this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePass
	case LevelDetail:
		return scope <= ScopeDefinition
	case LevelDebug:
		return true
	default:
		return false
	}
}

// ShouldEmitEvent is ShouldEmit plus failure events, which pass any level
// above off.
func (l Level) ShouldEmitEvent(ev *Event) bool {
	if ev == nil || l == LevelOff {
		return false
	}
	if ev.Failed {
		return true
	}
	return l.ShouldEmit(ev.Scope)
}
