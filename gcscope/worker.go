package gcscope

import (
	"sync/atomic"

	"github.com/penumbralab/penumbra/tracing"
)

// InvalidWorkerID is the worker id of a slot with no active session.
const InvalidWorkerID = -1

// A Worker is the identity slot of one pool goroutine. Each goroutine that
// participates in parallel or concurrent phases owns exactly one Worker and
// passes it to the sessions it opens; the slot is the explicit stand-in for
// thread-local state.
type Worker struct {
	id atomic.Int32
}

// NewWorker creates a Worker with no id assigned.
func NewWorker() *Worker {
	w := &Worker{}
	w.id.Store(InvalidWorkerID)

	return w
}

// CurrentID returns the worker id assigned by the active session, or
// InvalidWorkerID outside any session.
func (w *Worker) CurrentID() int {
	return int(w.id.Load())
}

// A WorkerSession assigns a worker id to a Worker slot for the duration of
// one stretch of work inside a phase. At End the slot is reset and a trace
// event is emitted; the concurrent and parallel constructors differ only in
// whether that event attributes the work to the worker slot.
type WorkerSession struct {
	inst     *Instrument
	worker   *Worker
	workerID int
	// reportedID is what the exit event carries: the worker id for
	// parallel sessions, InvalidWorkerID for concurrent ones.
	reportedID int
	ended      bool
}

func newWorkerSession(
	inst *Instrument,
	worker *Worker,
	workerID int,
	reportedID int,
) *WorkerSession {
	if workerID < 0 {
		panic("worker id out of range")
	}

	if !worker.id.CompareAndSwap(InvalidWorkerID, int32(workerID)) {
		panic("worker id already assigned")
	}

	return &WorkerSession{
		inst:       inst,
		worker:     worker,
		workerID:   workerID,
		reportedID: reportedID,
	}
}

// NewConcurrentWorkerSession opens a session for work attributed to the
// phase as a whole. Concurrent phases have no fixed worker-count notion, so
// the exit event carries the phase but no worker id.
func NewConcurrentWorkerSession(
	inst *Instrument,
	worker *Worker,
	workerID int,
) *WorkerSession {
	return newWorkerSession(inst, worker, workerID, InvalidWorkerID)
}

// NewParallelWorkerSession opens a session for work attributed to one slot
// of a fixed worker pool. The exit event carries the worker id, which
// load-balance diagnostics need.
func NewParallelWorkerSession(
	inst *Instrument,
	worker *Worker,
	workerID int,
) *WorkerSession {
	return newWorkerSession(inst, worker, workerID, workerID)
}

// End resets the slot to InvalidWorkerID and emits a trace event naming the
// phase that is active at this moment.
func (s *WorkerSession) End() {
	if s.ended {
		panic("worker session already ended")
	}
	s.ended = true

	inst := s.inst

	if inst.NumHooks() > 0 {
		tracing.ReportWorkerEnd(inst, tracing.WorkerEvent{
			GCID:     inst.GCID(),
			WorkerID: s.reportedID,
			Phase:    inst.CurrentPhase().Name(),
			Time:     inst.clock.CurrentTime(),
		})
	}

	if !s.worker.id.CompareAndSwap(int32(s.workerID), InvalidWorkerID) {
		panic("worker id changed during session")
	}
}
