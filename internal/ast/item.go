package ast

import (
	"ssc/internal/source"
)

type ItemKind uint8

const (
	// ItemTypeDecl is `name : Type`.
	ItemTypeDecl ItemKind = iota
	// ItemProc is `name(p, ...) = body`.
	ItemProc
	// ItemVar is `name = value`.
	ItemVar
)

func (k ItemKind) String() string {
	switch k {
	case ItemTypeDecl:
		return "TypeDecl"
	case ItemProc:
		return "Proc"
	case ItemVar:
		return "Var"
	default:
		return "Item(?)"
	}
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type TypeDeclItem struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID
}

type ProcItem struct {
	Name        source.StringID
	NameSpan    source.Span
	ParamsStart ParamID
	ParamsCount uint32
	Body        ExprID
}

type VarItem struct {
	Name     source.StringID
	NameSpan source.Span
	Value    ExprID
}

type Items struct {
	Arena     *Arena[Item]
	TypeDecls *Arena[TypeDeclItem]
	Procs     *Arena[ProcItem]
	Vars      *Arena[VarItem]
	Params    *Params
}

// NewItems creates per-kind arenas. If capHint is 0, 1<<7 is used.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:     NewArena[Item](capHint),
		TypeDecls: NewArena[TypeDeclItem](capHint),
		Procs:     NewArena[ProcItem](capHint),
		Vars:      NewArena[VarItem](capHint),
		Params:    NewParams(capHint),
	}
}

func (i *Items) new(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

func (i *Items) NewTypeDecl(span source.Span, name source.StringID, nameSpan source.Span, typ TypeID) ItemID {
	payload := i.TypeDecls.Allocate(TypeDeclItem{Name: name, NameSpan: nameSpan, Type: typ})
	return i.new(ItemTypeDecl, span, PayloadID(payload))
}

func (i *Items) TypeDecl(id ItemID) (*TypeDeclItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemTypeDecl {
		return nil, false
	}
	return i.TypeDecls.Get(uint32(item.Payload)), true
}

func (i *Items) NewProc(span source.Span, name source.StringID, nameSpan source.Span, params []Param, body ExprID) ItemID {
	start, count := i.Params.Push(params)
	payload := i.Procs.Allocate(ProcItem{
		Name:        name,
		NameSpan:    nameSpan,
		ParamsStart: start,
		ParamsCount: count,
		Body:        body,
	})
	return i.new(ItemProc, span, PayloadID(payload))
}

func (i *Items) Proc(id ItemID) (*ProcItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemProc {
		return nil, false
	}
	return i.Procs.Get(uint32(item.Payload)), true
}

// ProcParams returns a copy of the procedure's parameters.
func (i *Items) ProcParams(proc *ProcItem) []Param {
	if proc == nil {
		return nil
	}
	return i.Params.Slice(proc.ParamsStart, proc.ParamsCount)
}

func (i *Items) NewVar(span source.Span, name source.StringID, nameSpan source.Span, value ExprID) ItemID {
	payload := i.Vars.Allocate(VarItem{Name: name, NameSpan: nameSpan, Value: value})
	return i.new(ItemVar, span, PayloadID(payload))
}

func (i *Items) Var(id ItemID) (*VarItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemVar {
		return nil, false
	}
	return i.Vars.Get(uint32(item.Payload)), true
}

// Name returns the name every item kind carries, with its span.
func (i *Items) Name(id ItemID) (source.StringID, source.Span, bool) {
	item := i.Get(id)
	if item == nil {
		return source.NoStringID, source.Span{}, false
	}
	switch item.Kind {
	case ItemTypeDecl:
		d := i.TypeDecls.Get(uint32(item.Payload))
		return d.Name, d.NameSpan, true
	case ItemProc:
		p := i.Procs.Get(uint32(item.Payload))
		return p.Name, p.NameSpan, true
	case ItemVar:
		v := i.Vars.Get(uint32(item.Payload))
		return v.Name, v.NameSpan, true
	}
	return source.NoStringID, source.Span{}, false
}
