// Package timing accumulates the raw time measurements the scope brackets
// produce: cycle and pause timestamps on the Timer, and per-phase durations
// and worker windows on PhaseTimings.
package timing

import (
	"sync"
	"time"

	"github.com/penumbralab/penumbra/gc"
)

// TimePartitions summarizes how collection time divides between
// stop-the-world pauses and concurrent work. Stopped and Concurrent
// accumulate across cycles; LastCycle covers the most recent finished cycle
// only.
type TimePartitions struct {
	Stopped    time.Duration
	Concurrent time.Duration
	LastCycle  time.Duration
	Cycles     int
	Pauses     int
}

// Total returns the accumulated collection time across all cycles.
func (p TimePartitions) Total() time.Duration {
	return p.Stopped + p.Concurrent
}

// A Timer records cycle-level and pause-level timestamps for one collector.
// Registration calls happen once per cycle or pause and are mutex-guarded;
// Partitions may be read from any goroutine.
type Timer struct {
	timeTeller gc.TimeTeller

	mu         sync.Mutex
	cycleStart time.Time
	pauseStart time.Time
	inCycle    bool
	inPause    bool

	cycleStopped time.Duration
	partitions   TimePartitions
}

// NewTimer creates a Timer that reads time from timeTeller.
func NewTimer(timeTeller gc.TimeTeller) *Timer {
	return &Timer{timeTeller: timeTeller}
}

// RegisterCycleStart marks the beginning of a collection cycle.
func (t *Timer) RegisterCycleStart() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inCycle {
		panic("cycle already started")
	}

	t.cycleStart = t.timeTeller.CurrentTime()
	t.cycleStopped = 0
	t.inCycle = true

	return t.cycleStart
}

// RegisterCycleEnd marks the end of the running collection cycle.
func (t *Timer) RegisterCycleEnd() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inCycle {
		panic("cycle end without cycle start")
	}

	if t.inPause {
		panic("cycle ended inside a pause")
	}

	end := t.timeTeller.CurrentTime()
	elapsed := end.Sub(t.cycleStart)

	t.partitions.Concurrent += elapsed - t.cycleStopped
	t.partitions.LastCycle = elapsed
	t.partitions.Cycles++
	t.inCycle = false

	return end
}

// RegisterPauseStart marks the beginning of a stop-the-world pause. Pauses
// must not overlap and must sit inside a running cycle.
func (t *Timer) RegisterPauseStart() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inCycle {
		panic("pause outside of a cycle")
	}

	if t.inPause {
		panic("overlapping pauses")
	}

	t.pauseStart = t.timeTeller.CurrentTime()
	t.inPause = true

	return t.pauseStart
}

// RegisterPauseEnd marks the end of the running pause.
func (t *Timer) RegisterPauseEnd() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.inPause {
		panic("pause end without pause start")
	}

	end := t.timeTeller.CurrentTime()
	stopped := end.Sub(t.pauseStart)
	t.cycleStopped += stopped
	t.partitions.Stopped += stopped
	t.partitions.Pauses++
	t.inPause = false

	return end
}

// Partitions returns the accumulated time partition summary.
func (t *Timer) Partitions() TimePartitions {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.partitions
}
