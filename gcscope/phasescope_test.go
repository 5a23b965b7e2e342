package gcscope

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penumbralab/penumbra/gc"
	"github.com/penumbralab/penumbra/phase"
	"github.com/penumbralab/penumbra/tracing"
)

var _ = Describe("PhaseScope", func() {
	var (
		clock   *stepClock
		tracer  *capturingTracer
		inst    *Instrument
		session *Session
	)

	BeforeEach(func() {
		clock = newStepClock()
		tracer = &capturingTracer{}

		inst = NewInstrument("TestGC").WithClock(clock)
		tracing.CollectTrace(inst, tracer)

		session = NewSession(inst, gc.CauseAllocFailure)
	})

	It("should restore the enclosing phase when nested", func() {
		pause := NewPauseMark(inst, "Final Mark")

		outer := NewPhaseScope(inst, phase.FinalMark)
		Expect(inst.CurrentPhase()).To(Equal(phase.FinalMark))
		clock.Advance(time.Millisecond)

		inner := NewPhaseScope(inst, phase.Purge)
		Expect(inst.CurrentPhase()).To(Equal(phase.Purge))
		clock.Advance(2 * time.Millisecond)
		inner.End()

		Expect(inst.CurrentPhase()).To(Equal(phase.FinalMark))
		clock.Advance(time.Millisecond)
		outer.End()

		Expect(inst.PhaseActive()).To(BeFalse())
		pause.End()
		session.End()

		Expect(inst.PhaseTimings().TotalFor(phase.Purge)).
			To(Equal(2 * time.Millisecond))
		Expect(inst.PhaseTimings().TotalFor(phase.FinalMark)).
			To(Equal(4 * time.Millisecond))

		Expect(tracer.phaseStarts).To(HaveLen(2))
		Expect(tracer.phaseStarts[0].Phase).To(Equal(phase.FinalMark))
		Expect(tracer.phaseStarts[1].Phase).To(Equal(phase.Purge))
		Expect(tracer.phaseEnds).To(HaveLen(2))
		Expect(tracer.phaseEnds[0].Phase).To(Equal(phase.Purge))
		Expect(tracer.phaseEnds[1].Phase).To(Equal(phase.FinalMark))
	})

	It("should accumulate repeated occurrences of the same phase", func() {
		for i := 0; i < 3; i++ {
			scope := NewPhaseScope(inst, phase.ConcurrentMark)
			clock.Advance(time.Millisecond)
			scope.End()
		}

		session.End()

		Expect(inst.PhaseTimings().CountFor(phase.ConcurrentMark)).To(Equal(3))
		Expect(inst.PhaseTimings().TotalFor(phase.ConcurrentMark)).
			To(Equal(3 * time.Millisecond))
	})

	It("should refuse sentinel phases", func() {
		Expect(func() {
			NewPhaseScope(inst, phase.Invalid)
		}).To(PanicWith("phase out of range"))
		Expect(func() {
			NewPhaseScope(inst, phase.NumPhases)
		}).To(PanicWith("phase out of range"))
	})

	It("should refuse a phase outside a session", func() {
		session.End()

		Expect(func() {
			NewPhaseScope(inst, phase.ConcurrentMark)
		}).To(PanicWith("phase outside of a session"))
	})

	It("should refuse to end twice", func() {
		scope := NewPhaseScope(inst, phase.ConcurrentMark)
		scope.End()

		Expect(func() { scope.End() }).
			To(PanicWith("phase scope already ended"))
	})
})

var _ = Describe("WorkerPhase", func() {
	var (
		clock *stepClock
		inst  *Instrument
	)

	BeforeEach(func() {
		clock = newStepClock()
		inst = NewInstrument("TestGC").WithClock(clock)

		NewSession(inst, gc.CauseAllocFailure)
	})

	It("should record the worker window alongside phase time", func() {
		scope := NewPhaseScope(inst, phase.ScanRoots)
		clock.Advance(time.Millisecond)

		workers := NewWorkerPhase(inst, phase.ScanRoots)
		clock.Advance(2 * time.Millisecond)
		workers.End()

		clock.Advance(time.Millisecond)
		scope.End()

		Expect(inst.PhaseTimings().WorkerWindowFor(phase.ScanRoots)).
			To(Equal(2 * time.Millisecond))
		Expect(inst.PhaseTimings().TotalFor(phase.ScanRoots)).
			To(Equal(4 * time.Millisecond))
	})

	It("should refuse to end twice", func() {
		workers := NewWorkerPhase(inst, phase.ScanRoots)
		workers.End()

		Expect(func() { workers.End() }).
			To(PanicWith("worker phase already ended"))
	})
})
