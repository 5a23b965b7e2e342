package tracing

import (
	"sync"

	"github.com/tebeka/atexit"

	"github.com/penumbralab/penumbra/datarecording"
	"github.com/penumbralab/penumbra/gc"
)

type cycleTableEntry struct {
	GCID          uint64  `json:"gc_id"`
	Cause         string  `json:"cause"`
	StartTime     float64 `json:"start_time"`
	EndTime       float64 `json:"end_time"`
	StoppedNs     int64   `json:"stopped_ns"`
	ConcurrentNs  int64   `json:"concurrent_ns"`
	PreUsedBytes  uint64  `json:"pre_used_bytes"`
	PostUsedBytes uint64  `json:"post_used_bytes"`
	Collections   uint64  `json:"collections"`
}

type pauseTableEntry struct {
	GCID      uint64  `json:"gc_id"`
	Name      string  `json:"name"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

type phaseTableEntry struct {
	GCID      uint64  `json:"gc_id"`
	Phase     int32   `json:"phase"`
	Name      string  `json:"name"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

type heapStateTableEntry struct {
	GCID           uint64  `json:"gc_id"`
	When           string  `json:"when"`
	UsedBytes      uint64  `json:"used_bytes"`
	CommittedBytes uint64  `json:"committed_bytes"`
	ReservedBytes  uint64  `json:"reserved_bytes"`
	RSSBytes       uint64  `json:"rss_bytes"`
	Collections    uint64  `json:"collections"`
	Time           float64 `json:"time"`
}

type workerTableEntry struct {
	ID       string  `json:"id"`
	GCID     uint64  `json:"gc_id"`
	WorkerID int     `json:"worker_id"`
	Phase    string  `json:"phase"`
	Time     float64 `json:"time"`
}

// DBTracer stores trace events into a database. DBTracers can connect with
// different backends so that the events can be stored in different types of
// databases (e.g., SQLite files).
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder
}

// NewDBTracer creates a new DBTracer.
func NewDBTracer(backend datarecording.DataRecorder) *DBTracer {
	backend.CreateTable("gc_cycles", cycleTableEntry{})
	backend.CreateTable("gc_pauses", pauseTableEntry{})
	backend.CreateTable("gc_phases", phaseTableEntry{})
	backend.CreateTable("gc_heap_states", heapStateTableEntry{})
	backend.CreateTable("gc_worker_events", workerTableEntry{})

	t := &DBTracer{backend: backend}

	atexit.Register(func() { t.Flush() })

	return t
}

// StartCycle does nothing. The cycle row is written once the cycle ends and
// the full capture set is known.
func (t *DBTracer) StartCycle(_ CycleEvent) {
	// Do nothing
}

// EndCycle writes the finished cycle.
func (t *DBTracer) EndCycle(e CycleEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData("gc_cycles", cycleTableEntry{
		GCID:          e.GCID,
		Cause:         e.Cause.String(),
		StartTime:     timeToSeconds(e.StartTime),
		EndTime:       timeToSeconds(e.EndTime),
		StoppedNs:     e.Partitions.Stopped.Nanoseconds(),
		ConcurrentNs:  e.Partitions.Concurrent.Nanoseconds(),
		PreUsedBytes:  e.PreUsage.Used,
		PostUsedBytes: e.PostUsage.Used,
		Collections:   e.Collections,
	})
}

// StartPause does nothing.
func (t *DBTracer) StartPause(_ PauseEvent) {
	// Do nothing
}

// EndPause writes the finished pause.
func (t *DBTracer) EndPause(e PauseEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData("gc_pauses", pauseTableEntry{
		GCID:      e.GCID,
		Name:      e.Name,
		StartTime: timeToSeconds(e.StartTime),
		EndTime:   timeToSeconds(e.EndTime),
	})
}

// StartPhase does nothing.
func (t *DBTracer) StartPhase(_ PhaseEvent) {
	// Do nothing
}

// EndPhase writes the finished phase.
func (t *DBTracer) EndPhase(e PhaseEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData("gc_phases", phaseTableEntry{
		GCID:      e.GCID,
		Phase:     int32(e.Phase),
		Name:      e.Name,
		StartTime: timeToSeconds(e.StartTime),
		EndTime:   timeToSeconds(e.EndTime),
	})
}

// HeapState writes the heap-usage snapshot.
func (t *DBTracer) HeapState(e HeapStateEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData("gc_heap_states", heapStateTableEntry{
		GCID:           e.GCID,
		When:           e.When.String(),
		UsedBytes:      e.Usage.Used,
		CommittedBytes: e.Usage.Committed,
		ReservedBytes:  e.Usage.Reserved,
		RSSBytes:       e.Usage.RSS,
		Collections:    e.Usage.Collections,
		Time:           timeToSeconds(e.Time),
	})
}

// WorkerEnd writes the worker event.
func (t *DBTracer) WorkerEnd(e WorkerEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData("gc_worker_events", workerTableEntry{
		ID:       gc.GetRowIDGenerator().Generate(),
		GCID:     e.GCID,
		WorkerID: e.WorkerID,
		Phase:    e.Phase,
		Time:     timeToSeconds(e.Time),
	})
}

// Flush flushes the backend.
func (t *DBTracer) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Flush()
}
