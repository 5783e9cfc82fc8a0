package ast

import (
	"fmt"

	"fortio.org/safecast"

	"ssc/internal/source"
)

// Param is a procedure or lambda parameter: just a name.
type Param struct {
	Name source.StringID
	Span source.Span
}

// Params stores parameter lists contiguously; a list is (start, count).
type Params struct {
	Arena *Arena[Param]
}

func NewParams(capHint uint) *Params {
	return &Params{Arena: NewArena[Param](capHint)}
}

// Push stores params and returns the id of the first one. An empty list
// yields NoParamID.
func (p *Params) Push(params []Param) (ParamID, uint32) {
	if len(params) == 0 {
		return NoParamID, 0
	}
	var first ParamID
	for i, param := range params {
		id := ParamID(p.Arena.Allocate(param))
		if i == 0 {
			first = id
		}
	}
	count, err := safecast.Conv[uint32](len(params))
	if err != nil {
		panic(fmt.Errorf("param count overflow: %w", err))
	}
	return first, count
}

// Slice returns a copy of the list starting at start.
func (p *Params) Slice(start ParamID, count uint32) []Param {
	if count == 0 || !start.IsValid() {
		return nil
	}
	out := make([]Param, 0, count)
	for offset := range count {
		param := p.Arena.Get(uint32(start) + offset)
		if param == nil {
			break
		}
		out = append(out, *param)
	}
	return out
}
