// Package heap provides the heap-usage snapshots that cycle trace records
// capture before and after a collection.
package heap

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/process"
)

// A Snapshot is a point-in-time view of heap usage. Snapshots are captured at
// cycle granularity only; capturing them on every pause would make each
// stop-the-world interval pay for the walk.
type Snapshot struct {
	Used        uint64
	Committed   uint64
	Reserved    uint64
	RSS         uint64
	Collections uint64
}

// A Provider captures heap-usage snapshots.
type Provider interface {
	Snapshot() Snapshot
}

// MemStatsProvider captures snapshots from the Go runtime allocator.
type MemStatsProvider struct{}

// Snapshot reads runtime.MemStats.
func (MemStatsProvider) Snapshot() Snapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return Snapshot{
		Used:        ms.HeapAlloc,
		Committed:   ms.HeapSys - ms.HeapReleased,
		Reserved:    ms.HeapSys,
		Collections: uint64(ms.NumGC),
	}
}

// ProcessProvider decorates another provider with the resident set size of
// the current process.
type ProcessProvider struct {
	inner Provider
	proc  *process.Process
}

// NewProcessProvider creates a ProcessProvider around inner.
func NewProcessProvider(inner Provider) (*ProcessProvider, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}

	return &ProcessProvider{inner: inner, proc: proc}, nil
}

// Snapshot captures a snapshot from the inner provider and fills in RSS.
func (p *ProcessProvider) Snapshot() Snapshot {
	snap := p.inner.Snapshot()

	memInfo, err := p.proc.MemoryInfo()
	if err == nil {
		snap.RSS = memInfo.RSS
	}

	return snap
}
