package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase names recorded by the driver.
const (
	PhaseLoad = "load"
	PhaseLex  = "lex"
	PhaseBind = "bind"
)

// Phase accumulates every run of one named phase.
type Phase struct {
	Name  string
	Count int
	Dur   time.Duration
	Note  string
}

// Timer accumulates phase durations. Phases of the same name are summed, so
// files lexed in parallel add up under one "lex" entry. A nil *Timer records
// nothing; all methods are safe for concurrent use.
type Timer struct {
	mu      sync.Mutex
	started time.Time
	order   []string
	phases  map[string]*Phase
}

// NewTimer creates an empty Timer whose wall clock starts now.
func NewTimer() *Timer {
	return &Timer{
		started: time.Now(),
		order:   make([]string, 0, 4),
		phases:  make(map[string]*Phase, 4),
	}
}

// Stopwatch measures one run of a phase until End is called.
type Stopwatch struct {
	t     *Timer
	name  string
	start time.Time
}

// Begin starts measuring a run of the named phase.
func (t *Timer) Begin(name string) Stopwatch {
	if t == nil {
		return Stopwatch{}
	}
	return Stopwatch{t: t, name: name, start: time.Now()}
}

// End adds the elapsed time to the phase. A non-empty note replaces the
// phase's previous one.
func (s Stopwatch) End(note string) {
	if s.t == nil {
		return
	}
	s.t.Add(s.name, time.Since(s.start), note)
}

// Add records one run of name lasting d.
func (t *Timer) Add(name string, d time.Duration, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.phases[name]
	if !ok {
		p = &Phase{Name: name}
		t.phases[name] = p
		t.order = append(t.order, name)
	}
	p.Count++
	p.Dur += d
	if note != "" {
		p.Note = note
	}
}

// Phases returns a copy of the recorded phases in first-seen order.
func (t *Timer) Phases() []Phase {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Phase, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, *t.phases[name])
	}
	return out
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name" yaml:"name"`
	Count      int     `json:"count" yaml:"count"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	Note       string  `json:"note,omitempty" yaml:"note,omitempty"`
}

// Report описывает агрегированные данные таймера. TotalMS — сумма фаз,
// WallMS — время с момента NewTimer; при параллельной работе первое больше.
type Report struct {
	TotalMS float64       `json:"total_ms" yaml:"total_ms"`
	WallMS  float64       `json:"wall_ms" yaml:"wall_ms"`
	Phases  []PhaseReport `json:"phases" yaml:"phases"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	phases := t.Phases()
	if len(phases) == 0 {
		return Report{}
	}
	report := Report{
		Phases: make([]PhaseReport, len(phases)),
		WallMS: durationToMillis(time.Since(t.started)),
	}
	var total time.Duration
	for i, phase := range phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			Count:      phase.Count,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary returns a human-readable table of the recorded phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-12s %7.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&b, "  x%d", p.Count)
		}
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %7.2f ms\n", "total", report.TotalMS)
	fmt.Fprintf(&b, "  %-12s %7.2f ms\n", "wall", report.WallMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
