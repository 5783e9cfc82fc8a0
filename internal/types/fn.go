package types //nolint:revive

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params []TypeID // Parameter types (in order)
	Result TypeID   // Return type
}

// Arity returns the number of parameters.
func (f *FnInfo) Arity() int {
	if f == nil {
		return 0
	}
	return len(f.Params)
}

// RegisterFn creates or finds a function type.
func (in *Interner) RegisterFn(params []TypeID, result TypeID) TypeID {
	key := fnKey(params, result)
	if id, ok := in.fnIndex[key]; ok {
		return id
	}
	slot := in.appendFnInfo(FnInfo{
		Params: slices.Clone(params),
		Result: result,
	})
	id := in.internRaw(Type{Kind: KindFn, Payload: slot})
	in.fnIndex[key] = id
	return id
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn {
		return nil, false
	}
	if int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

func (in *Interner) appendFnInfo(info FnInfo) uint32 {
	in.fns = append(in.fns, info)
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return slot
}

// ключ вида "1,2,3>4"
func fnKey(params []TypeID, result TypeID) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(p), 10))
	}
	b.WriteByte('>')
	b.WriteString(strconv.FormatUint(uint64(result), 10))
	return b.String()
}
