package tracing

import (
	"time"

	"github.com/penumbralab/penumbra/gc"
	"github.com/penumbralab/penumbra/heap"
	"github.com/penumbralab/penumbra/phase"
	"github.com/penumbralab/penumbra/timing"
)

// InvalidWorkerID marks a worker event that is attributed to the phase as a
// whole rather than to one worker slot.
const InvalidWorkerID = -1

// A CycleEvent describes one collection cycle. Cycle records carry the full
// capture set: cause, begin/end times, pre/post heap usage, the accumulated
// time partitions, and the collection count.
type CycleEvent struct {
	GCID        uint64                 `json:"gc_id"`
	Cause       gc.Cause               `json:"cause"`
	StartTime   time.Time              `json:"start_time"`
	EndTime     time.Time              `json:"end_time"`
	PreUsage    heap.Snapshot          `json:"pre_usage"`
	PostUsage   heap.Snapshot          `json:"post_usage"`
	Partitions  timing.TimePartitions  `json:"partitions"`
	Collections uint64                 `json:"collections"`
}

// A PauseEvent describes one stop-the-world pause. Pause records carry the
// reduced capture set: begin/end times and the accumulated stopped time, but
// no heap usage. Heap usage is captured at cycle granularity instead, so
// pauses do not pay for usage snapshots.
type PauseEvent struct {
	GCID               uint64        `json:"gc_id"`
	Name               string        `json:"name"`
	StartTime          time.Time     `json:"start_time"`
	EndTime            time.Time     `json:"end_time"`
	AccumulatedStopped time.Duration `json:"accumulated_stopped"`
}

// A PhaseEvent describes one occurrence of a named phase.
type PhaseEvent struct {
	GCID      uint64      `json:"gc_id"`
	Phase     phase.Phase `json:"phase"`
	Name      string      `json:"name"`
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
}

// A HeapStateEvent is a heap-usage snapshot taken at a cycle boundary.
type HeapStateEvent struct {
	GCID  uint64        `json:"gc_id"`
	When  gc.When       `json:"when"`
	Usage heap.Snapshot `json:"usage"`
	Time  time.Time     `json:"time"`
}

// A WorkerEvent is emitted when a worker session ends. WorkerID is
// InvalidWorkerID for concurrent sessions, where progress is attributed to
// the phase rather than to a worker slot.
type WorkerEvent struct {
	GCID     uint64    `json:"gc_id"`
	WorkerID int       `json:"worker_id"`
	Phase    string    `json:"phase"`
	Time     time.Time `json:"time"`
}
