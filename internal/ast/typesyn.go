package ast

import (
	"slices"

	"ssc/internal/source"
)

type TypeExprKind uint8

const (
	// TypeExprName is a base type by name, e.g. i64.
	TypeExprName TypeExprKind = iota
	// TypeExprArrow is (T, ...) -> T.
	TypeExprArrow
	// TypeExprFree is an explicit type variable. The surface syntax has no
	// spelling for it; tools and tests build it directly.
	TypeExprFree
)

type TypeExpr struct {
	Kind    TypeExprKind
	Span    source.Span
	Payload PayloadID
}

type TypeNameData struct {
	Name source.StringID
}

type TypeArrowData struct {
	Params []TypeID
	Result TypeID
}

type TypeFreeData struct {
	Var uint32
}

type TypeExprs struct {
	Arena  *Arena[TypeExpr]
	Names  *Arena[TypeNameData]
	Arrows *Arena[TypeArrowData]
	Frees  *Arena[TypeFreeData]
}

func NewTypeExprs(capHint uint) *TypeExprs {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &TypeExprs{
		Arena:  NewArena[TypeExpr](capHint),
		Names:  NewArena[TypeNameData](capHint),
		Arrows: NewArena[TypeArrowData](capHint),
		Frees:  NewArena[TypeFreeData](capHint),
	}
}

func (t *TypeExprs) new(kind TypeExprKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(t.Arena.Allocate(TypeExpr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (t *TypeExprs) Get(id TypeID) *TypeExpr {
	return t.Arena.Get(uint32(id))
}

func (t *TypeExprs) NewName(span source.Span, name source.StringID) TypeID {
	payload := t.Names.Allocate(TypeNameData{Name: name})
	return t.new(TypeExprName, span, PayloadID(payload))
}

func (t *TypeExprs) Name(id TypeID) (*TypeNameData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeExprName {
		return nil, false
	}
	return t.Names.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewArrow(span source.Span, params []TypeID, result TypeID) TypeID {
	payload := t.Arrows.Allocate(TypeArrowData{Params: slices.Clone(params), Result: result})
	return t.new(TypeExprArrow, span, PayloadID(payload))
}

func (t *TypeExprs) Arrow(id TypeID) (*TypeArrowData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeExprArrow {
		return nil, false
	}
	return t.Arrows.Get(uint32(typ.Payload)), true
}

func (t *TypeExprs) NewFree(span source.Span, v uint32) TypeID {
	payload := t.Frees.Allocate(TypeFreeData{Var: v})
	return t.new(TypeExprFree, span, PayloadID(payload))
}

func (t *TypeExprs) Free(id TypeID) (*TypeFreeData, bool) {
	typ := t.Get(id)
	if typ == nil || typ.Kind != TypeExprFree {
		return nil, false
	}
	return t.Frees.Get(uint32(typ.Payload)), true
}
