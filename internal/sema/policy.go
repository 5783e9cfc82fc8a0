package sema

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides what happens when a name is declared twice.
type DuplicatePolicy uint8

const (
	// DuplicateLastWins keeps the later declaration silently.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateError fails the check at the second declaration.
	DuplicateError
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateLastWins:
		return "last-wins"
	case DuplicateError:
		return "error"
	default:
		return fmt.Sprintf("DuplicatePolicy(%d)", p)
	}
}

// ParseDuplicatePolicy accepts the spellings used by flags and ssc.toml.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-wins", "last_wins", "lastwins":
		return DuplicateLastWins, nil
	case "error":
		return DuplicateError, nil
	default:
		return DuplicateLastWins, fmt.Errorf("invalid duplicate declaration policy %q (expected: last-wins|error)", s)
	}
}

// Policy groups the configurable checking choices.
type Policy struct {
	DuplicateDecls DuplicatePolicy
}
