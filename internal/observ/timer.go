package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"ssc/internal/diag"
	"ssc/internal/source"
)

// Phase records the duration of one pipeline phase (load, lex, parse, check).
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks phases of one or more checks. Safe for concurrent use so
// directory checks can share one timer.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Phases returns a copy of the recorded phases.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Phase(nil), t.phases...)
}

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var out strings.Builder
	out.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&out, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			out.WriteString("  // " + p.Note)
		}
		out.WriteByte('\n')
	}
	fmt.Fprintf(&out, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	return out.String()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
// Фазы с одинаковым именем (например, check по нескольким файлам) суммируются.
func (t *Timer) Report() Report {
	phases := t.Phases()
	if len(phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, 0, len(phases))}
	index := make(map[string]int, len(phases))
	var total time.Duration
	for _, phase := range phases {
		total += phase.Dur
		if i, ok := index[phase.Name]; ok {
			report.Phases[i].DurationMS += durationToMillis(phase.Dur)
			if phase.Note != "" {
				report.Phases[i].Note = phase.Note
			}
			continue
		}
		index[phase.Name] = len(report.Phases)
		report.Phases = append(report.Phases, PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		})
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Diagnostic packs the report into an ObsTimings info diagnostic, one note
// per phase, so timings travel through the same renderers as errors.
func (t *Timer) Diagnostic(at source.Span) *diag.Diagnostic {
	report := t.Report()
	d := diag.New(diag.SevInfo, diag.ObsTimings, at, fmt.Sprintf("timings: total %.2f ms", report.TotalMS))
	for _, p := range report.Phases {
		msg := fmt.Sprintf("%s: %.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			msg += " (" + p.Note + ")"
		}
		d.WithNote(at, msg)
	}
	return d
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
