package tracing

import "github.com/penumbralab/penumbra/gc"

// NamedHookable represent something both have a name and can be hooked
type NamedHookable interface {
	gc.Named
	gc.Hookable
	InvokeHook(gc.HookCtx)
}

// A list of hook poses for the hooks to apply to
var (
	HookPosCycleStart = &gc.HookPos{Name: "HookPosCycleStart"}
	HookPosCycleEnd   = &gc.HookPos{Name: "HookPosCycleEnd"}
	HookPosPauseStart = &gc.HookPos{Name: "HookPosPauseStart"}
	HookPosPauseEnd   = &gc.HookPos{Name: "HookPosPauseEnd"}
	HookPosPhaseStart = &gc.HookPos{Name: "HookPosPhaseStart"}
	HookPosPhaseEnd   = &gc.HookPos{Name: "HookPosPhaseEnd"}
	HookPosHeapState  = &gc.HookPos{Name: "HookPosHeapState"}
	HookPosWorkerEnd  = &gc.HookPos{Name: "HookPosWorkerEnd"}
)

func invoke(domain NamedHookable, pos *gc.HookPos, item interface{}) {
	ctx := gc.HookCtx{
		Domain: domain,
		Item:   item,
		Pos:    pos,
	}
	domain.InvokeHook(ctx)
}

// ReportCycleStart notifies the hooks that hook to the domain about the
// start of a collection cycle.
func ReportCycleStart(domain NamedHookable, e CycleEvent) {
	if domain.NumHooks() == 0 {
		return
	}

	cycleEventMustBeTagged(e.GCID)
	invoke(domain, HookPosCycleStart, e)
}

// ReportCycleEnd notifies the hooks about the end of a collection cycle. The
// event carries the full capture set.
func ReportCycleEnd(domain NamedHookable, e CycleEvent) {
	if domain.NumHooks() == 0 {
		return
	}

	cycleEventMustBeTagged(e.GCID)
	invoke(domain, HookPosCycleEnd, e)
}

// ReportPauseStart notifies the hooks about the start of a stop-the-world
// pause.
func ReportPauseStart(domain NamedHookable, e PauseEvent) {
	if domain.NumHooks() == 0 {
		return
	}

	pauseEventMustBeNamed(e)
	invoke(domain, HookPosPauseStart, e)
}

// ReportPauseEnd notifies the hooks about the end of a stop-the-world pause.
func ReportPauseEnd(domain NamedHookable, e PauseEvent) {
	if domain.NumHooks() == 0 {
		return
	}

	pauseEventMustBeNamed(e)
	invoke(domain, HookPosPauseEnd, e)
}

// ReportPhaseStart notifies the hooks about the start of a phase.
func ReportPhaseStart(domain NamedHookable, e PhaseEvent) {
	if domain.NumHooks() == 0 {
		return
	}

	invoke(domain, HookPosPhaseStart, e)
}

// ReportPhaseEnd notifies the hooks about the end of a phase.
func ReportPhaseEnd(domain NamedHookable, e PhaseEvent) {
	if domain.NumHooks() == 0 {
		return
	}

	invoke(domain, HookPosPhaseEnd, e)
}

// ReportHeapState notifies the hooks about a heap-usage snapshot taken at a
// cycle boundary.
func ReportHeapState(domain NamedHookable, e HeapStateEvent) {
	if domain.NumHooks() == 0 {
		return
	}

	invoke(domain, HookPosHeapState, e)
}

// ReportWorkerEnd notifies the hooks that a worker session ended against the
// named phase.
func ReportWorkerEnd(domain NamedHookable, e WorkerEvent) {
	if domain.NumHooks() == 0 {
		return
	}

	if e.Phase == "" {
		panic("worker event phase must not be empty")
	}

	invoke(domain, HookPosWorkerEnd, e)
}

func cycleEventMustBeTagged(gcID uint64) {
	if gcID == 0 {
		panic("cycle event must carry a gc id")
	}
}

func pauseEventMustBeNamed(e PauseEvent) {
	if e.Name == "" {
		panic("pause must have a name")
	}
}
