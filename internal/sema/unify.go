package sema

import (
	"ssc/internal/trace"
	"ssc/internal/types"
)

type failureKind uint8

const (
	failMismatch failureKind = iota
	failArity
	failOccurs
)

// unifyFailure is the innermost conflicting pair, already resolved.
// For failOccurs, expected is the variable and actual the type containing it.
type unifyFailure struct {
	kind     failureKind
	expected types.TypeID
	actual   types.TypeID
}

// unifier keeps the substitution of one checking run as a union-find table:
// binding[v] is either another variable (same class) or a non-variable type.
type unifier struct {
	types   *types.Interner
	binding map[uint32]types.TypeID
	tracer  trace.Tracer
	parent  uint64
}

func newUnifier(in *types.Interner, tracer trace.Tracer) *unifier {
	return &unifier{
		types:   in,
		binding: make(map[uint32]types.TypeID),
		tracer:  tracer,
	}
}

// find returns the representative of t, compressing the path it walked.
func (u *unifier) find(t types.TypeID) types.TypeID {
	v, ok := u.types.VarID(t)
	if !ok {
		return t
	}
	next, bound := u.binding[v]
	if !bound {
		return t
	}
	root := u.find(next)
	if root != next {
		u.binding[v] = root
	}
	return root
}

// occurs reports whether variable v appears in t under the current bindings.
func (u *unifier) occurs(v uint32, t types.TypeID) bool {
	t = u.find(t)
	if id, ok := u.types.VarID(t); ok {
		return id == v
	}
	if fn, ok := u.types.FnInfo(t); ok {
		for _, p := range fn.Params {
			if u.occurs(v, p) {
				return true
			}
		}
		return u.occurs(v, fn.Result)
	}
	return false
}

func (u *unifier) bind(v uint32, varType, t types.TypeID) *unifyFailure {
	if u.occurs(v, t) {
		return &unifyFailure{kind: failOccurs, expected: varType, actual: u.resolve(t)}
	}
	u.binding[v] = t
	if u.tracer.Enabled() {
		trace.Point(u.tracer, trace.ScopeNode, "bind", u.parent,
			types.Label(u.types, varType)+" := "+types.Label(u.types, t))
	}
	return nil
}

// unify makes expected and actual equal or reports the innermost conflict.
// Bindings made before a failure are kept; the run stops anyway.
func (u *unifier) unify(expected, actual types.TypeID) *unifyFailure {
	a := u.find(expected)
	b := u.find(actual)
	if a == b {
		return nil
	}

	if v, ok := u.types.VarID(a); ok {
		return u.bind(v, a, b)
	}
	if v, ok := u.types.VarID(b); ok {
		return u.bind(v, b, a)
	}

	fa, okA := u.types.FnInfo(a)
	fb, okB := u.types.FnInfo(b)
	if okA && okB {
		if fa.Arity() != fb.Arity() {
			return &unifyFailure{kind: failArity, expected: u.resolve(a), actual: u.resolve(b)}
		}
		// копии: resolve может дорастить интернер
		pa, pb := *fa, *fb
		for i := range pa.Params {
			if f := u.unify(pa.Params[i], pb.Params[i]); f != nil {
				return f
			}
		}
		return u.unify(pa.Result, pb.Result)
	}

	// два разных базовых типа или база против стрелки
	return &unifyFailure{kind: failMismatch, expected: u.resolve(a), actual: u.resolve(b)}
}

// resolve substitutes every bound variable in t. Unbound variables stay.
func (u *unifier) resolve(t types.TypeID) types.TypeID {
	t = u.find(t)
	fn, ok := u.types.FnInfo(t)
	if !ok {
		return t
	}
	params := make([]types.TypeID, len(fn.Params))
	changed := false
	for i, p := range fn.Params {
		params[i] = u.resolve(p)
		changed = changed || params[i] != p
	}
	result := u.resolve(fn.Result)
	if !changed && result == fn.Result {
		return t
	}
	return u.types.RegisterFn(params, result)
}

// freeVars lists unbound variables of t in first-occurrence order.
func (u *unifier) freeVars(t types.TypeID, out []types.TypeID) []types.TypeID {
	t = u.find(t)
	if _, ok := u.types.VarID(t); ok {
		for _, seen := range out {
			if seen == t {
				return out
			}
		}
		return append(out, t)
	}
	if fn, ok := u.types.FnInfo(t); ok {
		for _, p := range fn.Params {
			out = u.freeVars(p, out)
		}
		return u.freeVars(fn.Result, out)
	}
	return out
}
