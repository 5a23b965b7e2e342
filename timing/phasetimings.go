package timing

import (
	"sync"
	"time"

	"github.com/penumbralab/penumbra/gc"
	"github.com/penumbralab/penumbra/phase"
)

// A PhaseSummary reports the accumulated measurements of one phase.
type PhaseSummary struct {
	Phase        phase.Phase
	Name         string
	Total        time.Duration
	Count        int
	WorkerWindow time.Duration
}

// Utilization returns the ratio of the phase wall time to the window during
// which workers ran, or zero when no worker window was recorded.
func (s PhaseSummary) Utilization() float64 {
	if s.WorkerWindow == 0 {
		return 0
	}

	return float64(s.Total) / float64(s.WorkerWindow)
}

// PhaseTimings accumulates (phase, duration) samples from phase scopes and
// workers-start/workers-end windows from worker-phase scopes. Many worker
// goroutines may report into it concurrently during a parallel phase.
type PhaseTimings struct {
	timeTeller gc.TimeTeller

	mu           sync.Mutex
	totals       [phase.NumPhases]time.Duration
	counts       [phase.NumPhases]int
	workerStart  [phase.NumPhases]time.Time
	workerWindow [phase.NumPhases]time.Duration
}

// NewPhaseTimings creates a PhaseTimings that reads time from timeTeller.
func NewPhaseTimings(timeTeller gc.TimeTeller) *PhaseTimings {
	return &PhaseTimings{timeTeller: timeTeller}
}

// RecordPhaseTime adds one (phase, duration) sample.
func (t *PhaseTimings) RecordPhaseTime(p phase.Phase, d time.Duration) {
	if !p.Valid() {
		panic("phase out of range")
	}

	t.mu.Lock()
	t.totals[p] += d
	t.counts[p]++
	t.mu.Unlock()
}

// RecordWorkersStart marks the beginning of the window during which workers
// run against p. The window is a separate channel from the single-threaded
// phase time.
func (t *PhaseTimings) RecordWorkersStart(p phase.Phase) {
	if !p.Valid() {
		panic("phase out of range")
	}

	t.mu.Lock()
	t.workerStart[p] = t.timeTeller.CurrentTime()
	t.mu.Unlock()
}

// RecordWorkersEnd closes the worker window of p.
func (t *PhaseTimings) RecordWorkersEnd(p phase.Phase) {
	if !p.Valid() {
		panic("phase out of range")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.workerStart[p].IsZero() {
		panic("workers end without workers start")
	}

	now := t.timeTeller.CurrentTime()
	t.workerWindow[p] += now.Sub(t.workerStart[p])
	t.workerStart[p] = time.Time{}
}

// TotalFor returns the accumulated wall time of p.
func (t *PhaseTimings) TotalFor(p phase.Phase) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.totals[p]
}

// CountFor returns the number of samples recorded for p.
func (t *PhaseTimings) CountFor(p phase.Phase) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.counts[p]
}

// WorkerWindowFor returns the accumulated worker window of p.
func (t *PhaseTimings) WorkerWindowFor(p phase.Phase) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.workerWindow[p]
}

// Summary returns one entry per phase that recorded at least one sample or
// worker window, in phase order.
func (t *PhaseTimings) Summary() []PhaseSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	summaries := make([]PhaseSummary, 0)
	for p := phase.Phase(0); p < phase.NumPhases; p++ {
		if t.counts[p] == 0 && t.workerWindow[p] == 0 {
			continue
		}

		summaries = append(summaries, PhaseSummary{
			Phase:        p,
			Name:         p.Name(),
			Total:        t.totals[p],
			Count:        t.counts[p],
			WorkerWindow: t.workerWindow[p],
		})
	}

	return summaries
}
