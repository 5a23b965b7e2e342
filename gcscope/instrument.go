package gcscope

import (
	"sync/atomic"

	"github.com/penumbralab/penumbra/gc"
	"github.com/penumbralab/penumbra/heap"
	"github.com/penumbralab/penumbra/heuristics"
	"github.com/penumbralab/penumbra/phase"
	"github.com/penumbralab/penumbra/timing"
)

// An Instrument holds the measurement state of one collector: the current
// phase, the recorded cause, the timer, the phase-timings accumulator, and
// the collaborators notified at scope boundaries. One Instrument exists per
// collector; tests construct an independent instance per case.
//
// Phases are driven only through the Instrument, which is held by control
// and concurrent-GC code. The worker-facing surface (Worker, WorkerSession)
// exposes no way to begin a phase, so worker goroutines cannot mutate the
// current-phase state.
type Instrument struct {
	*gc.HookableBase

	name       string
	clock      gc.TimeTeller
	timer      *timing.Timer
	timings    *timing.PhaseTimings
	heap       heap.Provider
	policy     heuristics.Policy
	heuristics heuristics.Heuristics
	ids        gc.IDSource

	// currentPhase holds a phase.Phase. Written only by phase scopes,
	// which the nesting discipline serializes; read from any goroutine.
	currentPhase  atomic.Int32
	cause         atomic.Int32
	sessionActive atomic.Bool
	pauseActive   atomic.Bool
}

// NewInstrument creates an Instrument with the wall clock, the runtime heap
// provider, and no-op policy collaborators. Replace the defaults with the
// With methods before the first scope is opened.
func NewInstrument(name string) *Instrument {
	i := &Instrument{
		HookableBase: gc.NewHookableBase(),
		name:         name,
		heap:         heap.MemStatsProvider{},
		policy:       heuristics.NopHeuristics{},
		heuristics:   heuristics.NopHeuristics{},
	}

	i.setClock(gc.WallClock{})
	i.currentPhase.Store(int32(phase.Invalid))

	return i
}

// WithClock replaces the time source. The timer and the phase timings read
// from the same clock.
func (i *Instrument) WithClock(clock gc.TimeTeller) *Instrument {
	i.setClock(clock)
	return i
}

// WithHeap replaces the heap snapshot provider.
func (i *Instrument) WithHeap(provider heap.Provider) *Instrument {
	i.heap = provider
	return i
}

// WithPolicy replaces the policy collaborator.
func (i *Instrument) WithPolicy(p heuristics.Policy) *Instrument {
	i.policy = p
	return i
}

// WithHeuristics replaces the heuristics collaborator.
func (i *Instrument) WithHeuristics(h heuristics.Heuristics) *Instrument {
	i.heuristics = h
	return i
}

func (i *Instrument) setClock(clock gc.TimeTeller) {
	i.clock = clock
	i.timer = timing.NewTimer(clock)
	i.timings = timing.NewPhaseTimings(clock)
}

// Name returns the name of the instrumented collector.
func (i *Instrument) Name() string {
	return i.name
}

// CurrentPhase returns the innermost active phase, or phase.Invalid if no
// phase is active. Safe to call from any goroutine.
func (i *Instrument) CurrentPhase() phase.Phase {
	return phase.Phase(i.currentPhase.Load())
}

// PhaseActive reports whether any phase is currently active.
func (i *Instrument) PhaseActive() bool {
	return i.CurrentPhase().Valid()
}

// InRootWorkPhase reports whether the currently active phase touches the GC
// root set. A pure function of the current-phase state.
func (i *Instrument) InRootWorkPhase() bool {
	return i.CurrentPhase().RootWork()
}

// Cause returns the cause of the running collection, or gc.CauseNone when no
// collection is in progress.
func (i *Instrument) Cause() gc.Cause {
	return gc.Cause(i.cause.Load())
}

// GCID returns the id of the running collection, or the id of the last
// finished collection if none is running.
func (i *Instrument) GCID() uint64 {
	return i.ids.Current()
}

// Timer returns the cycle/pause timer.
func (i *Instrument) Timer() *timing.Timer {
	return i.timer
}

// PhaseTimings returns the phase-timings accumulator.
func (i *Instrument) PhaseTimings() *timing.PhaseTimings {
	return i.timings
}

func (i *Instrument) setCause(c gc.Cause) {
	i.cause.Store(int32(c))
}
