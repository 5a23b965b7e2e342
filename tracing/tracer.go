package tracing

// A Tracer can collect the trace events of a collector.
type Tracer interface {
	StartCycle(e CycleEvent)
	EndCycle(e CycleEvent)
	StartPause(e PauseEvent)
	EndPause(e PauseEvent)
	StartPhase(e PhaseEvent)
	EndPhase(e PhaseEvent)
	HeapState(e HeapStateEvent)
	WorkerEnd(e WorkerEvent)
}
