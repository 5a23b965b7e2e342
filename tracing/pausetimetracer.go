package tracing

import (
	"sync"
	"time"
)

// PauseTimeTracer aggregates the durations of stop-the-world pauses. It
// tolerates concurrent reporting and keeps only the aggregate, not the
// individual pauses.
type PauseTimeTracer struct {
	lock           sync.Mutex
	inflightPauses map[pauseKey]time.Time
	totalTime      time.Duration
	maxTime        time.Duration
	pauseCount     uint64
}

type pauseKey struct {
	gcID uint64
	name string
}

// NewPauseTimeTracer creates a new PauseTimeTracer
func NewPauseTimeTracer() *PauseTimeTracer {
	t := &PauseTimeTracer{
		inflightPauses: make(map[pauseKey]time.Time),
	}
	return t
}

// TotalTime returns the accumulated time spent in pauses.
func (t *PauseTimeTracer) TotalTime() time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.totalTime
}

// MaxTime returns the longest pause observed.
func (t *PauseTimeTracer) MaxTime() time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.maxTime
}

// AverageTime returns the mean pause duration.
func (t *PauseTimeTracer) AverageTime() time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.pauseCount == 0 {
		return 0
	}

	return t.totalTime / time.Duration(t.pauseCount)
}

// PauseCount returns the number of completed pauses.
func (t *PauseTimeTracer) PauseCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.pauseCount
}

// StartCycle does nothing
func (t *PauseTimeTracer) StartCycle(_ CycleEvent) {
	// Do nothing
}

// EndCycle does nothing
func (t *PauseTimeTracer) EndCycle(_ CycleEvent) {
	// Do nothing
}

// StartPause records the pause start time
func (t *PauseTimeTracer) StartPause(e PauseEvent) {
	t.lock.Lock()
	t.inflightPauses[pauseKey{e.GCID, e.Name}] = e.StartTime
	t.lock.Unlock()
}

// EndPause records the end of the pause
func (t *PauseTimeTracer) EndPause(e PauseEvent) {
	t.lock.Lock()
	defer t.lock.Unlock()

	key := pauseKey{e.GCID, e.Name}
	start, ok := t.inflightPauses[key]
	if !ok {
		return
	}

	pauseTime := e.EndTime.Sub(start)
	t.totalTime += pauseTime
	if pauseTime > t.maxTime {
		t.maxTime = pauseTime
	}
	t.pauseCount++
	delete(t.inflightPauses, key)
}

// StartPhase does nothing
func (t *PauseTimeTracer) StartPhase(_ PhaseEvent) {
	// Do nothing
}

// EndPhase does nothing
func (t *PauseTimeTracer) EndPhase(_ PhaseEvent) {
	// Do nothing
}

// HeapState does nothing
func (t *PauseTimeTracer) HeapState(_ HeapStateEvent) {
	// Do nothing
}

// WorkerEnd does nothing
func (t *PauseTimeTracer) WorkerEnd(_ WorkerEvent) {
	// Do nothing
}
