package source

import (
	"fmt"

	"fortio.org/safecast"
)

// StringID identifies an interned string. NoStringID is the empty string.
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier text so names compare as integers.
type Interner struct {
	byID  []string            // индекс -> строка (byID[0] = "" для NoStringID)
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, adding it on first use.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.index[s]; ok {
		return id
	}

	// собственная копия, чтобы не держать исходный буфер файла
	cpy := string([]byte(s))
	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	id := StringID(n)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Lookup returns the string for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown id.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Len counts interned strings including the reserved empty string.
func (i *Interner) Len() int {
	return len(i.byID)
}
