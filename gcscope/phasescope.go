package gcscope

import (
	"time"

	"github.com/penumbralab/penumbra/phase"
	"github.com/penumbralab/penumbra/tracing"
)

// A PhaseScope brackets one occurrence of a named phase. Scopes nest
// arbitrarily: each scope saves the phase that was active at construction
// and restores it at End, so nesting is correct even when the same phase
// identifier recurs at multiple depths.
type PhaseScope struct {
	inst      *Instrument
	phase     phase.Phase
	parent    phase.Phase
	startTime time.Time
	ended     bool
}

// NewPhaseScope enters p: it saves the current phase as parent, makes p the
// current phase, and records the entry timestamp. Only control and
// concurrent-GC code holds the Instrument, so worker goroutines cannot
// enter phases.
func NewPhaseScope(inst *Instrument, p phase.Phase) *PhaseScope {
	if !p.Valid() {
		panic("phase out of range")
	}

	if !inst.sessionActive.Load() {
		panic("phase outside of a session")
	}

	parent := inst.CurrentPhase()
	inst.currentPhase.Store(int32(p))
	startTime := inst.clock.CurrentTime()

	tracing.ReportPhaseStart(inst, tracing.PhaseEvent{
		GCID:      inst.GCID(),
		Phase:     p,
		Name:      p.Name(),
		StartTime: startTime,
	})

	return &PhaseScope{
		inst:      inst,
		phase:     p,
		parent:    parent,
		startTime: startTime,
	}
}

// End exits the phase: it forwards (phase, elapsed) to the phase-timings
// accumulator and restores the saved parent as the current phase.
func (s *PhaseScope) End() {
	if s.ended {
		panic("phase scope already ended")
	}
	s.ended = true

	inst := s.inst

	endTime := inst.clock.CurrentTime()
	inst.timings.RecordPhaseTime(s.phase, endTime.Sub(s.startTime))
	inst.currentPhase.Store(int32(s.parent))

	tracing.ReportPhaseEnd(inst, tracing.PhaseEvent{
		GCID:      inst.GCID(),
		Phase:     s.phase,
		Name:      s.phase.Name(),
		StartTime: s.startTime,
		EndTime:   endTime,
	})
}

// A WorkerPhase annotates the window during which a pool of workers runs
// against a phase. It does not participate in the nested current-phase
// stack; the workers-start and workers-end timestamps land in a separate
// channel of the accumulator, used downstream to compute worker
// utilization.
type WorkerPhase struct {
	inst  *Instrument
	phase phase.Phase
	ended bool
}

// NewWorkerPhase records the workers-started timestamp for p.
func NewWorkerPhase(inst *Instrument, p phase.Phase) *WorkerPhase {
	inst.timings.RecordWorkersStart(p)

	return &WorkerPhase{inst: inst, phase: p}
}

// End records the workers-ended timestamp.
func (w *WorkerPhase) End() {
	if w.ended {
		panic("worker phase already ended")
	}
	w.ended = true

	w.inst.timings.RecordWorkersEnd(w.phase)
}
