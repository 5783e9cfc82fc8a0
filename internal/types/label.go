package types

import (
	"strconv"
	"strings"
)

// Label returns a user-friendly label for a TypeID, using the same notation
// as type annotations: `i64`, `(i64, i64) -> i64`, and `'t3` for variables.
func Label(typesIn *Interner, id TypeID) string {
	return labelDepth(typesIn, id, 0)
}

func labelDepth(typesIn *Interner, id TypeID, depth int) string {
	if id == NoTypeID {
		return "?"
	}
	if depth > 16 {
		return "..."
	}
	if typesIn == nil {
		return "?"
	}
	tt, ok := typesIn.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
	case KindBase:
		if name, ok := typesIn.Strings.Lookup(tt.Name); ok && name != "" {
			return name
		}
		return "?"
	case KindVar:
		return "'t" + strconv.FormatUint(uint64(tt.Payload), 10)
	case KindFn:
		info, ok := typesIn.FnInfo(id)
		if !ok || info == nil {
			return "(?) -> ?"
		}
		params := make([]string, len(info.Params))
		for i, param := range info.Params {
			params[i] = labelDepth(typesIn, param, depth+1)
		}
		// результат правоассоциативен, скобки не нужны
		ret := labelDepth(typesIn, info.Result, depth+1)
		return "(" + strings.Join(params, ", ") + ") -> " + ret
	default:
		return "?"
	}
}
