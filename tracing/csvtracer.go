package tracing

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/tebeka/atexit"
)

type csvRow struct {
	kind    string
	gcID    uint64
	name    string
	worker  int
	start   time.Time
	end     time.Time
}

// CSVTraceWriter is a tracer that stores finished cycles, pauses, phases,
// and worker events into a CSV file.
type CSVTraceWriter struct {
	path string
	file *os.File

	lock       sync.Mutex
	rows       []csvRow
	bufferSize int
}

// NewCSVTraceWriter creates a new CSVTraceWriter.
func NewCSVTraceWriter(path string) *CSVTraceWriter {
	return &CSVTraceWriter{
		path:       path,
		bufferSize: 1000,
	}
}

// Init creates the tracing csv file. If the file already exists, it will be
// overwritten.
func (t *CSVTraceWriter) Init() {
	file, err := os.Create(t.path)
	if err != nil {
		panic(err)
	}
	t.file = file

	fmt.Fprintf(file, "Kind, GCID, Name, WorkerID, Start, End\n")

	atexit.Register(func() {
		t.Flush()
		err := t.file.Close()
		if err != nil {
			panic(err)
		}
	})
}

// StartCycle does nothing
func (t *CSVTraceWriter) StartCycle(_ CycleEvent) {
	// Do nothing
}

// EndCycle writes the finished cycle to the CSV file.
func (t *CSVTraceWriter) EndCycle(e CycleEvent) {
	t.write(csvRow{
		kind:   "cycle",
		gcID:   e.GCID,
		name:   e.Cause.String(),
		worker: InvalidWorkerID,
		start:  e.StartTime,
		end:    e.EndTime,
	})
}

// StartPause does nothing
func (t *CSVTraceWriter) StartPause(_ PauseEvent) {
	// Do nothing
}

// EndPause writes the finished pause to the CSV file.
func (t *CSVTraceWriter) EndPause(e PauseEvent) {
	t.write(csvRow{
		kind:   "pause",
		gcID:   e.GCID,
		name:   e.Name,
		worker: InvalidWorkerID,
		start:  e.StartTime,
		end:    e.EndTime,
	})
}

// StartPhase does nothing
func (t *CSVTraceWriter) StartPhase(_ PhaseEvent) {
	// Do nothing
}

// EndPhase writes the finished phase to the CSV file.
func (t *CSVTraceWriter) EndPhase(e PhaseEvent) {
	t.write(csvRow{
		kind:   "phase",
		gcID:   e.GCID,
		name:   e.Name,
		worker: InvalidWorkerID,
		start:  e.StartTime,
		end:    e.EndTime,
	})
}

// HeapState does nothing
func (t *CSVTraceWriter) HeapState(_ HeapStateEvent) {
	// Do nothing
}

// WorkerEnd writes the worker event to the CSV file.
func (t *CSVTraceWriter) WorkerEnd(e WorkerEvent) {
	t.write(csvRow{
		kind:   "worker",
		gcID:   e.GCID,
		name:   e.Phase,
		worker: e.WorkerID,
		start:  e.Time,
		end:    e.Time,
	})
}

func (t *CSVTraceWriter) write(row csvRow) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.rows = append(t.rows, row)
	if len(t.rows) >= t.bufferSize {
		t.flushLocked()
	}
}

// Flush flushes the buffered rows to the CSV file.
func (t *CSVTraceWriter) Flush() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.flushLocked()
}

func (t *CSVTraceWriter) flushLocked() {
	for _, row := range t.rows {
		fmt.Fprintf(t.file, "%s, %d, %s, %d, %.9f, %.9f\n",
			row.kind,
			row.gcID,
			row.name,
			row.worker,
			timeToSeconds(row.start),
			timeToSeconds(row.end),
		)
	}

	t.rows = nil
}

func timeToSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
