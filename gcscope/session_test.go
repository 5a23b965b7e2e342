package gcscope

import (
	"time"

	gomock "go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/penumbralab/penumbra/gc"
	"github.com/penumbralab/penumbra/heap"
	"github.com/penumbralab/penumbra/phase"
	"github.com/penumbralab/penumbra/tracing"
)

// fakeHeap returns a growing-then-shrinking usage sequence.
type fakeHeap struct {
	snapshots []heap.Snapshot
	next      int
}

func (h *fakeHeap) Snapshot() heap.Snapshot {
	snap := h.snapshots[h.next]
	if h.next < len(h.snapshots)-1 {
		h.next++
	}

	return snap
}

var _ = Describe("Session", func() {
	var (
		mockCtrl *gomock.Controller
		clock    *stepClock
		policy   *MockPolicy
		heur     *MockHeuristics
		tracer   *capturingTracer
		inst     *Instrument
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		clock = newStepClock()
		policy = NewMockPolicy(mockCtrl)
		heur = NewMockHeuristics(mockCtrl)
		tracer = &capturingTracer{}

		inst = NewInstrument("TestGC").
			WithClock(clock).
			WithHeap(&fakeHeap{snapshots: []heap.Snapshot{
				{Used: 800, Committed: 1024, Collections: 41},
				{Used: 200, Committed: 1024, Collections: 42},
			}}).
			WithPolicy(policy).
			WithHeuristics(heur)
		tracing.CollectTrace(inst, tracer)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should bracket one cycle with a root-scanning phase", func() {
		policy.EXPECT().RecordCycleStart()
		policy.EXPECT().RecordCycleEnd()
		heur.EXPECT().RecordCycleStart()
		heur.EXPECT().RecordCycleEnd()

		Expect(inst.PhaseActive()).To(BeFalse())

		session := NewSession(inst, gc.CauseAllocFailure)

		scope := NewPhaseScope(inst, phase.ScanRoots)
		Expect(inst.InRootWorkPhase()).To(BeTrue())
		clock.Advance(3 * time.Millisecond)
		scope.End()

		Expect(inst.InRootWorkPhase()).To(BeFalse())
		Expect(inst.PhaseActive()).To(BeFalse())

		clock.Advance(time.Millisecond)
		session.End()

		Expect(inst.PhaseTimings().TotalFor(phase.ScanRoots)).
			To(Equal(3 * time.Millisecond))
		Expect(inst.PhaseTimings().CountFor(phase.ScanRoots)).To(Equal(1))
		Expect(inst.PhaseActive()).To(BeFalse())
	})

	It("should tag events with the advanced gc id", func() {
		policy.EXPECT().RecordCycleStart().Times(2)
		policy.EXPECT().RecordCycleEnd().Times(2)
		heur.EXPECT().RecordCycleStart().Times(2)
		heur.EXPECT().RecordCycleEnd().Times(2)

		first := NewSession(inst, gc.CauseExplicit)
		Expect(first.GCID()).To(Equal(uint64(1)))
		first.End()

		second := NewSession(inst, gc.CauseExplicit)
		Expect(second.GCID()).To(Equal(uint64(2)))
		second.End()

		Expect(tracer.cycleStarts).To(HaveLen(2))
		Expect(tracer.cycleStarts[0].GCID).To(Equal(uint64(1)))
		Expect(tracer.cycleStarts[1].GCID).To(Equal(uint64(2)))
	})

	It("should record the cause for the duration of the cycle", func() {
		policy.EXPECT().RecordCycleStart()
		policy.EXPECT().RecordCycleEnd()
		heur.EXPECT().RecordCycleStart()
		heur.EXPECT().RecordCycleEnd()

		Expect(inst.Cause()).To(Equal(gc.CauseNone))

		session := NewSession(inst, gc.CauseFreeThreshold)
		Expect(inst.Cause()).To(Equal(gc.CauseFreeThreshold))

		session.End()
		Expect(inst.Cause()).To(Equal(gc.CauseNone))
	})

	It("should capture heap state before and after, on the cycle record only", func() {
		policy.EXPECT().RecordCycleStart()
		policy.EXPECT().RecordCycleEnd()
		heur.EXPECT().RecordCycleStart()
		heur.EXPECT().RecordCycleEnd()
		heur.EXPECT().RecordPauseStart()
		heur.EXPECT().RecordPauseEnd()

		session := NewSession(inst, gc.CauseAllocFailure)

		pause := NewPauseMark(inst, "Init Mark")
		clock.Advance(time.Millisecond)
		pause.End()

		clock.Advance(time.Millisecond)
		session.End()

		Expect(tracer.heapStates).To(HaveLen(2))
		Expect(tracer.heapStates[0].When).To(Equal(gc.BeforeGC))
		Expect(tracer.heapStates[0].Usage.Used).To(Equal(uint64(800)))
		Expect(tracer.heapStates[1].When).To(Equal(gc.AfterGC))
		Expect(tracer.heapStates[1].Usage.Used).To(Equal(uint64(200)))

		Expect(tracer.cycleEnds).To(HaveLen(1))
		Expect(tracer.cycleEnds[0].PreUsage.Used).To(Equal(uint64(800)))
		Expect(tracer.cycleEnds[0].PostUsage.Used).To(Equal(uint64(200)))
		Expect(tracer.cycleEnds[0].Collections).To(Equal(uint64(42)))
		Expect(tracer.cycleEnds[0].Partitions.Stopped).
			To(Equal(time.Millisecond))
		Expect(tracer.cycleEnds[0].Partitions.Concurrent).
			To(Equal(time.Millisecond))
	})

	It("should refuse to nest sessions", func() {
		policy.EXPECT().RecordCycleStart()
		heur.EXPECT().RecordCycleStart()

		NewSession(inst, gc.CauseExplicit)

		Expect(func() {
			NewSession(inst, gc.CauseExplicit)
		}).To(PanicWith("sessions must not nest"))
	})

	It("should refuse to start while a phase is active", func() {
		inst.currentPhase.Store(int32(phase.ConcurrentMark))

		Expect(func() {
			NewSession(inst, gc.CauseExplicit)
		}).To(PanicWith("phase active at session start"))
	})

	It("should refuse to end while a phase is active", func() {
		policy.EXPECT().RecordCycleStart()
		heur.EXPECT().RecordCycleStart()

		session := NewSession(inst, gc.CauseExplicit)
		NewPhaseScope(inst, phase.ConcurrentMark)

		Expect(func() { session.End() }).
			To(PanicWith("phase active at session end"))
	})
})

var _ = Describe("PauseMark", func() {
	var (
		mockCtrl *gomock.Controller
		clock    *stepClock
		heur     *MockHeuristics
		tracer   *capturingTracer
		inst     *Instrument
		session  *Session
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		clock = newStepClock()
		heur = NewMockHeuristics(mockCtrl)
		tracer = &capturingTracer{}

		inst = NewInstrument("TestGC").
			WithClock(clock).
			WithHeuristics(heur)
		tracing.CollectTrace(inst, tracer)

		heur.EXPECT().RecordCycleStart()
		session = NewSession(inst, gc.CauseAllocFailure)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should time sequential pauses individually", func() {
		heur.EXPECT().RecordPauseStart().Times(2)
		heur.EXPECT().RecordPauseEnd().Times(2)

		initMark := NewPauseMark(inst, "Init Mark")
		clock.Advance(2 * time.Millisecond)
		initMark.End()

		clock.Advance(10 * time.Millisecond)

		finalMark := NewPauseMark(inst, "Final Mark")
		clock.Advance(3 * time.Millisecond)
		finalMark.End()

		Expect(tracer.pauseEnds).To(HaveLen(2))
		Expect(tracer.pauseEnds[0].Name).To(Equal("Init Mark"))
		Expect(tracer.pauseEnds[0].EndTime.Sub(tracer.pauseEnds[0].StartTime)).
			To(Equal(2 * time.Millisecond))
		Expect(tracer.pauseEnds[0].AccumulatedStopped).
			To(Equal(2 * time.Millisecond))
		Expect(tracer.pauseEnds[1].Name).To(Equal("Final Mark"))
		Expect(tracer.pauseEnds[1].AccumulatedStopped).
			To(Equal(5 * time.Millisecond))
	})

	It("should refuse overlapping pause marks", func() {
		heur.EXPECT().RecordPauseStart()

		NewPauseMark(inst, "Init Mark")

		Expect(func() {
			NewPauseMark(inst, "Final Mark")
		}).To(PanicWith("overlapping pause marks"))
	})

	It("should refuse a pause mark outside a session", func() {
		heur.EXPECT().RecordCycleEnd()
		session.End()

		Expect(func() {
			NewPauseMark(inst, "Init Mark")
		}).To(PanicWith("pause mark outside session"))
	})
})
