package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	if b.I64 == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	i64, _ := in.Lookup(b.I64)
	if i64.Kind != KindBase {
		t.Fatalf("expected base kind, got %v", i64.Kind)
	}
	if name, _ := in.BaseName(b.I64); name != "i64" {
		t.Fatalf("expected i64, got %q", name)
	}
	if _, ok := in.Lookup(NoTypeID); ok {
		t.Fatalf("NoTypeID must not resolve")
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner(nil)
	if in.RegisterBase("i64") != in.Builtins().I64 {
		t.Fatalf("base types should be deduplicated")
	}
	f1 := in.RegisterFn([]TypeID{in.Builtins().I64}, in.Builtins().I64)
	f2 := in.RegisterFn([]TypeID{in.Builtins().I64}, in.Builtins().I64)
	if f1 != f2 {
		t.Fatalf("fn types should be deduplicated")
	}
	nullary := in.RegisterFn(nil, in.Builtins().I64)
	if nullary == f1 {
		t.Fatalf("arity must affect identity")
	}
	if info, ok := in.FnInfo(nullary); !ok || info.Arity() != 0 {
		t.Fatalf("unexpected fn info %+v", info)
	}
}

func TestVarsAreDistinct(t *testing.T) {
	in := NewInterner(nil)
	v0 := in.Var(0)
	v1 := in.Var(1)
	if v0 == v1 {
		t.Fatalf("distinct var ids must give distinct types")
	}
	if in.Var(1) != v1 {
		t.Fatalf("same var id must give the same type")
	}
	if id, ok := in.VarID(v1); !ok || id != 1 {
		t.Fatalf("VarID = %d, %v", id, ok)
	}
	if _, ok := in.VarID(in.Builtins().I64); ok {
		t.Fatalf("i64 is not a var")
	}
}

func TestLabel(t *testing.T) {
	in := NewInterner(nil)
	i64 := in.Builtins().I64
	unary := in.RegisterFn([]TypeID{i64}, i64)
	curried := in.RegisterFn([]TypeID{i64}, unary)
	higher := in.RegisterFn([]TypeID{unary, in.Var(3)}, in.RegisterBase("bool"))

	tests := []struct {
		id   TypeID
		want string
	}{
		{i64, "i64"},
		{unary, "(i64) -> i64"},
		{curried, "(i64) -> (i64) -> i64"},
		{higher, "((i64) -> i64, 't3) -> bool"},
		{in.RegisterFn(nil, i64), "() -> i64"},
		{NoTypeID, "?"},
	}
	for _, tt := range tests {
		if got := Label(in, tt.id); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
