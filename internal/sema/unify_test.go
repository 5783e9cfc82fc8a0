package sema

import (
	"testing"

	"ssc/internal/trace"
	"ssc/internal/types"
)

func newTestUnifier() (*unifier, *types.Interner) {
	in := types.NewInterner(nil)
	return newUnifier(in, trace.Nop), in
}

func TestUnifyBindsThroughChains(t *testing.T) {
	u, in := newTestUnifier()
	a, b, c := in.Var(0), in.Var(1), in.Var(2)
	i64 := in.Builtins().I64

	for _, pair := range [][2]types.TypeID{{a, b}, {b, c}, {c, i64}} {
		if f := u.unify(pair[0], pair[1]); f != nil {
			t.Fatalf("unify failed: %+v", f)
		}
	}
	for _, v := range []types.TypeID{a, b, c} {
		if got := u.resolve(v); got != i64 {
			t.Errorf("%s resolved to %s", types.Label(in, v), types.Label(in, got))
		}
	}
}

func TestUnifyFailures(t *testing.T) {
	u, in := newTestUnifier()
	i64 := in.Builtins().I64
	f64 := in.RegisterBase("f64")
	v := in.Var(0)

	tests := []struct {
		name     string
		expected types.TypeID
		actual   types.TypeID
		kind     failureKind
	}{
		{"bases", i64, f64, failMismatch},
		{"base vs fn", i64, in.RegisterFn([]types.TypeID{i64}, i64), failMismatch},
		{"arity", in.RegisterFn([]types.TypeID{i64, i64}, i64), in.RegisterFn([]types.TypeID{i64}, i64), failArity},
		{"occurs", v, in.RegisterFn([]types.TypeID{i64}, v), failOccurs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := u.unify(tt.expected, tt.actual)
			if f == nil || f.kind != tt.kind {
				t.Fatalf("got %+v, want kind %d", f, tt.kind)
			}
		})
	}
}

func TestFreeVarsOrderAndDedup(t *testing.T) {
	u, in := newTestUnifier()
	a, b := in.Var(4), in.Var(9)
	fn := in.RegisterFn([]types.TypeID{b, a, b}, a)

	free := u.freeVars(fn, nil)
	if len(free) != 2 || free[0] != b || free[1] != a {
		t.Fatalf("free = %v", free)
	}
	if f := u.unify(b, in.Builtins().I64); f != nil {
		t.Fatal(f)
	}
	if got := types.Label(in, u.resolve(fn)); got != "(i64, 't4, i64) -> 't4" {
		t.Errorf("resolved = %s", got)
	}
}
