package tracing

import (
	"fmt"
	"reflect"

	"github.com/penumbralab/penumbra/gc"
)

// CollectTrace let the tracer to collect trace from a domain
func CollectTrace(domain NamedHookable, tracer Tracer) {
	hooks := domain.Hooks()
	for _, hook := range hooks {
		hook, ok := hook.(*traceHook)
		if ok && hook.t == tracer {
			panic(fmt.Sprintf(
				"domain %s already has tracer %s",
				domain.Name(), reflect.TypeOf(tracer)))
		}
	}

	h := traceHook{t: tracer}
	domain.AcceptHook(&h)
}

// A traceHook is a hook that forwards trace events to a tracer
type traceHook struct {
	t Tracer
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx gc.HookCtx) {
	switch ctx.Pos {
	case HookPosCycleStart:
		h.t.StartCycle(ctx.Item.(CycleEvent))
	case HookPosCycleEnd:
		h.t.EndCycle(ctx.Item.(CycleEvent))
	case HookPosPauseStart:
		h.t.StartPause(ctx.Item.(PauseEvent))
	case HookPosPauseEnd:
		h.t.EndPause(ctx.Item.(PauseEvent))
	case HookPosPhaseStart:
		h.t.StartPhase(ctx.Item.(PhaseEvent))
	case HookPosPhaseEnd:
		h.t.EndPhase(ctx.Item.(PhaseEvent))
	case HookPosHeapState:
		h.t.HeapState(ctx.Item.(HeapStateEvent))
	case HookPosWorkerEnd:
		h.t.WorkerEnd(ctx.Item.(WorkerEvent))
	}
}
