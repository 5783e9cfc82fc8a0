package ast

import (
	"ssc/internal/source"
)

type Hints struct{ Files, Items, Exprs, Types uint }

// Builder owns every arena of one or more parsed files plus the string
// interner the names point into.
type Builder struct {
	Files           *Files
	Items           *Items
	Exprs           *Exprs
	Types           *TypeExprs
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, stringsInterner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 3
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 7
	}
	if stringsInterner == nil {
		stringsInterner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Exprs:           NewExprs(hints.Exprs),
		Types:           NewTypeExprs(hints.Types),
		StringsInterner: stringsInterner,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Name resolves an interned name, "" when unknown.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}
