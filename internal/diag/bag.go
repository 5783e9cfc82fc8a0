package diag

import (
	"fmt"
	"sort"
)

// Bag collects diagnostics up to a fixed limit.
type Bag struct {
	items []*Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 100
	}
	return &Bag{
		items: make([]*Diagnostic, 0, min(max, 16)),
		max:   max,
	}
}

// Add stores d unless the limit has been reached.
// Returns false when the diagnostic was dropped.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasErrors reports whether any diagnostic has SevError.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// длина
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the underlying slice. Do not modify it.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Merge appends all diagnostics of other, growing the limit if needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, start, end, severity (desc), code
// for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// простая дедупликация (по Code+Primary)
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	out := make([]*Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code.ID(), d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
