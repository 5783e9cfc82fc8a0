package types

import (
	"fmt"

	"fortio.org/safecast"

	"ssc/internal/source"
)

// I64Name is the name of the integer literal type.
const I64Name = "i64"

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	I64     TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Two structurally equal types always share a TypeID, so equality of
// resolved types is a plain comparison.
type Interner struct {
	Strings *source.Interner

	types    []Type
	index    map[typeKey]TypeID
	fns      []FnInfo
	fnIndex  map[string]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
// A nil strings interner gets a private one.
func NewInterner(strings *source.Interner) *Interner {
	if strings == nil {
		strings = source.NewInterner()
	}
	in := &Interner{
		Strings: strings,
		index:   make(map[typeKey]TypeID, 64),
		fnIndex: make(map[string]TypeID, 16),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.I64 = in.RegisterBase(I64Name)
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Len returns the number of interned descriptors including the invalid slot.
func (in *Interner) Len() int {
	return len(in.types)
}

// Intern ensures the provided descriptor has a stable TypeID.
// Fn descriptors must go through RegisterFn.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// RegisterBase returns the base type with the given name.
func (in *Interner) RegisterBase(name string) TypeID {
	return in.Intern(Type{Kind: KindBase, Name: in.Strings.Intern(name)})
}

// Var returns the TypeID of inference variable id. Distinct ids always give
// distinct TypeIDs.
func (in *Interner) Var(id uint32) TypeID {
	return in.Intern(Type{Kind: KindVar, Payload: id})
}

// VarID reports the variable id behind a KindVar TypeID.
func (in *Interner) VarID(id TypeID) (uint32, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindVar {
		return 0, false
	}
	return tt.Payload, true
}

// BaseName returns the name of a base type.
func (in *Interner) BaseName(id TypeID) (string, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindBase {
		return "", false
	}
	return in.Strings.Lookup(tt.Name)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	if t.Kind != KindFn {
		in.index[typeKey(t)] = id
	}
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if in == nil || id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

type typeKey struct {
	Kind    Kind
	Name    source.StringID
	Payload uint32
}
