package gcscope

import (
	"time"

	"github.com/penumbralab/penumbra/gc"
	"github.com/penumbralab/penumbra/heap"
	"github.com/penumbralab/penumbra/tracing"
)

// A Session brackets one full collection cycle, concurrent or fully
// stop-the-world. Exactly one Session may be active per collector and
// Sessions do not nest; a cycle is always the outermost scope.
type Session struct {
	inst      *Instrument
	gcID      uint64
	cause     gc.Cause
	startTime time.Time
	preUsage  heap.Snapshot
	ended     bool
}

// NewSession starts a collection cycle: it advances the gc id, records the
// cause, registers cycle start with the timer, reports cycle start and a
// "before" heap snapshot to the attached tracers, and notifies the policy
// and heuristics collaborators.
func NewSession(inst *Instrument, cause gc.Cause) *Session {
	if inst.PhaseActive() {
		panic("phase active at session start")
	}

	if !inst.sessionActive.CompareAndSwap(false, true) {
		panic("sessions must not nest")
	}

	gcID := inst.ids.Advance()
	inst.setCause(cause)

	startTime := inst.timer.RegisterCycleStart()
	tracing.ReportCycleStart(inst, tracing.CycleEvent{
		GCID:      gcID,
		Cause:     cause,
		StartTime: startTime,
	})

	preUsage := inst.heap.Snapshot()
	tracing.ReportHeapState(inst, tracing.HeapStateEvent{
		GCID:  gcID,
		When:  gc.BeforeGC,
		Usage: preUsage,
		Time:  startTime,
	})

	inst.policy.RecordCycleStart()
	inst.heuristics.RecordCycleStart()

	return &Session{
		inst:      inst,
		gcID:      gcID,
		cause:     cause,
		startTime: startTime,
		preUsage:  preUsage,
	}
}

// End finishes the cycle: it notifies the collaborators, registers cycle end
// with the timer, captures the "after" heap snapshot, reports cycle end with
// the accumulated time partitions, and clears the recorded cause. The cycle
// record carries the full capture set: pre/post usage, begin/end time,
// accumulated time, and collection count.
func (s *Session) End() {
	if s.ended {
		panic("session already ended")
	}
	s.ended = true

	inst := s.inst

	if inst.PhaseActive() {
		panic("phase active at session end")
	}

	inst.heuristics.RecordCycleEnd()
	inst.policy.RecordCycleEnd()

	endTime := inst.timer.RegisterCycleEnd()

	postUsage := inst.heap.Snapshot()
	tracing.ReportHeapState(inst, tracing.HeapStateEvent{
		GCID:  s.gcID,
		When:  gc.AfterGC,
		Usage: postUsage,
		Time:  endTime,
	})

	tracing.ReportCycleEnd(inst, tracing.CycleEvent{
		GCID:        s.gcID,
		Cause:       s.cause,
		StartTime:   s.startTime,
		EndTime:     endTime,
		PreUsage:    s.preUsage,
		PostUsage:   postUsage,
		Partitions:  inst.timer.Partitions(),
		Collections: postUsage.Collections,
	})

	inst.setCause(gc.CauseNone)
	inst.sessionActive.Store(false)
}

// GCID returns the id of the collection this session brackets.
func (s *Session) GCID() uint64 {
	return s.gcID
}

// A PauseMark brackets one stop-the-world pause inside a session. Multiple
// pause marks may occur sequentially within one session, but they must not
// overlap.
//
// Pause records deliberately capture no heap usage; usage snapshots are
// taken at cycle granularity, so pauses stay cheap.
type PauseMark struct {
	inst      *Instrument
	gcID      uint64
	name      string
	startTime time.Time
	ended     bool
}

// NewPauseMark starts a named pause: it registers pause start with the
// timer, reports pause start to the attached tracers, and notifies the
// heuristics collaborator.
func NewPauseMark(inst *Instrument, name string) *PauseMark {
	if !inst.sessionActive.Load() {
		panic("pause mark outside session")
	}

	if !inst.pauseActive.CompareAndSwap(false, true) {
		panic("overlapping pause marks")
	}

	startTime := inst.timer.RegisterPauseStart()
	gcID := inst.GCID()

	tracing.ReportPauseStart(inst, tracing.PauseEvent{
		GCID:      gcID,
		Name:      name,
		StartTime: startTime,
	})

	inst.heuristics.RecordPauseStart()

	return &PauseMark{
		inst:      inst,
		gcID:      gcID,
		name:      name,
		startTime: startTime,
	}
}

// End finishes the pause: it registers pause end with the timer, notifies
// the heuristics collaborator, and commits the pause record.
func (m *PauseMark) End() {
	if m.ended {
		panic("pause mark already ended")
	}
	m.ended = true

	inst := m.inst

	endTime := inst.timer.RegisterPauseEnd()
	inst.heuristics.RecordPauseEnd()

	tracing.ReportPauseEnd(inst, tracing.PauseEvent{
		GCID:               m.gcID,
		Name:               m.name,
		StartTime:          m.startTime,
		EndTime:            endTime,
		AccumulatedStopped: inst.timer.Partitions().Stopped,
	})

	inst.pauseActive.Store(false)
}
