// Package gcscope brackets the execution of a garbage collector.
//
// An Instrument holds the measurement state of one collector. Collector code
// wraps its work in nested scopes: a Session around a whole collection
// cycle, a PauseMark around each stop-the-world pause, a PhaseScope around
// each named phase, and a WorkerPhase plus per-goroutine WorkerSessions
// around parallel work inside a phase. Each scope performs its entry side
// effects in its constructor and its exit side effects in End, so the usual
// pattern is
//
//	session := gcscope.NewSession(inst, gc.CauseAllocFailure)
//	defer session.End()
//
// Mis-nested scopes are programming errors in the collector and panic at the
// point of violation.
package gcscope
