package sema

import (
	"ssc/internal/source"
	"ssc/internal/types"
)

// Scope is an immutable name→type mapping. Lookups that miss fall back to
// the parent, so a child shadows without touching the parent.
type Scope struct {
	parent *Scope
	names  map[source.StringID]types.TypeID
}

// Binding pairs a name with its type for Child.
type Binding struct {
	Name source.StringID
	Type types.TypeID
}

func newRootScope(names map[source.StringID]types.TypeID) *Scope {
	return &Scope{names: names}
}

// Child returns a scope extending s with bindings. A name bound twice in
// bindings resolves to the later binding.
func (s *Scope) Child(bindings []Binding) *Scope {
	names := make(map[source.StringID]types.TypeID, len(bindings))
	for _, b := range bindings {
		names[b.Name] = b.Type
	}
	return &Scope{parent: s, names: names}
}

// Lookup finds the nearest binding of name.
func (s *Scope) Lookup(name source.StringID) (types.TypeID, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if ty, ok := sc.names[name]; ok {
			return ty, true
		}
	}
	return types.NoTypeID, false
}

// Depth is the number of scopes between s and the root.
func (s *Scope) Depth() int {
	d := 0
	for sc := s.parent; sc != nil; sc = sc.parent {
		d++
	}
	return d
}
