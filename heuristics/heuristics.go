// Package heuristics defines the policy collaborator contracts the scope
// brackets notify, plus a counting implementation usable as a default.
package heuristics

import "sync"

// Policy is notified of cycle boundaries. The collector's policy object
// keeps long-term statistics about collection frequency.
type Policy interface {
	RecordCycleStart()
	RecordCycleEnd()
}

// Heuristics is notified of cycle and pause boundaries. Implementations feed
// the decisions about when the next collection should start.
type Heuristics interface {
	RecordCycleStart()
	RecordCycleEnd()
	RecordPauseStart()
	RecordPauseEnd()
}

// NopHeuristics ignores all notifications. It serves as the default for
// instruments that have no policy attached.
type NopHeuristics struct{}

func (NopHeuristics) RecordCycleStart() {}
func (NopHeuristics) RecordCycleEnd()   {}
func (NopHeuristics) RecordPauseStart() {}
func (NopHeuristics) RecordPauseEnd()   {}

// CycleStats is a Policy and Heuristics implementation that counts cycle and
// pause boundaries. Safe for concurrent use.
type CycleStats struct {
	mu      sync.Mutex
	cycles  int
	pauses  int
	inCycle bool
	inPause bool
}

// RecordCycleStart notes that a cycle began.
func (s *CycleStats) RecordCycleStart() {
	s.mu.Lock()
	s.cycles++
	s.inCycle = true
	s.mu.Unlock()
}

// RecordCycleEnd notes that the running cycle finished.
func (s *CycleStats) RecordCycleEnd() {
	s.mu.Lock()
	s.inCycle = false
	s.mu.Unlock()
}

// RecordPauseStart notes that a pause began.
func (s *CycleStats) RecordPauseStart() {
	s.mu.Lock()
	s.pauses++
	s.inPause = true
	s.mu.Unlock()
}

// RecordPauseEnd notes that the running pause finished.
func (s *CycleStats) RecordPauseEnd() {
	s.mu.Lock()
	s.inPause = false
	s.mu.Unlock()
}

// Cycles returns the number of cycles started so far.
func (s *CycleStats) Cycles() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cycles
}

// Pauses returns the number of pauses started so far.
func (s *CycleStats) Pauses() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pauses
}

// InCycle reports whether a cycle is currently running.
func (s *CycleStats) InCycle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inCycle
}

// InPause reports whether a pause is currently running.
func (s *CycleStats) InPause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inPause
}
