package driver

import (
	"ssc/internal/diag"
	"ssc/internal/observ"
	"ssc/internal/source"
)

// AppendTimings adds the timer's ObsTimings diagnostic to bag, growing the
// bag past its limit if needed so timings are never dropped.
func AppendTimings(bag *diag.Bag, timer *observ.Timer, at source.Span) {
	if bag == nil || timer == nil {
		return
	}
	entry := timer.Diagnostic(at)
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
