package types

import (
	"fmt"

	"ssc/internal/source"
)

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindBase is a named base type such as i64.
	KindBase
	// KindFn is a procedure type (arrow) with ordered params and a result.
	KindFn
	// KindVar is an inference variable; Payload holds its id.
	KindVar
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBase:
		return "base"
	case KindFn:
		return "fn"
	case KindVar:
		return "var"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Name    source.StringID // for base types
	Payload uint32          // fn info slot or var id
}
