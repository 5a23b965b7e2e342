package tracing

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PauseTimeTracer", func() {
	var tracer *PauseTimeTracer

	BeforeEach(func() {
		tracer = NewPauseTimeTracer()
	})

	It("should report zero before any pause completes", func() {
		Expect(tracer.TotalTime()).To(Equal(time.Duration(0)))
		Expect(tracer.MaxTime()).To(Equal(time.Duration(0)))
		Expect(tracer.AverageTime()).To(Equal(time.Duration(0)))
		Expect(tracer.PauseCount()).To(Equal(uint64(0)))
	})

	It("should aggregate completed pauses", func() {
		tracer.StartPause(PauseEvent{
			GCID:      1,
			Name:      "Init Mark",
			StartTime: secondsAfterEpoch(0),
		})
		tracer.EndPause(PauseEvent{
			GCID:    1,
			Name:    "Init Mark",
			EndTime: secondsAfterEpoch(2 * time.Millisecond),
		})

		tracer.StartPause(PauseEvent{
			GCID:      1,
			Name:      "Final Mark",
			StartTime: secondsAfterEpoch(10 * time.Millisecond),
		})
		tracer.EndPause(PauseEvent{
			GCID:    1,
			Name:    "Final Mark",
			EndTime: secondsAfterEpoch(16 * time.Millisecond),
		})

		Expect(tracer.TotalTime()).To(Equal(8 * time.Millisecond))
		Expect(tracer.MaxTime()).To(Equal(6 * time.Millisecond))
		Expect(tracer.AverageTime()).To(Equal(4 * time.Millisecond))
		Expect(tracer.PauseCount()).To(Equal(uint64(2)))
	})

	It("should keep same-named pauses of different cycles apart", func() {
		tracer.StartPause(PauseEvent{
			GCID:      1,
			Name:      "Init Mark",
			StartTime: secondsAfterEpoch(0),
		})
		tracer.StartPause(PauseEvent{
			GCID:      2,
			Name:      "Init Mark",
			StartTime: secondsAfterEpoch(10 * time.Millisecond),
		})

		tracer.EndPause(PauseEvent{
			GCID:    2,
			Name:    "Init Mark",
			EndTime: secondsAfterEpoch(11 * time.Millisecond),
		})
		tracer.EndPause(PauseEvent{
			GCID:    1,
			Name:    "Init Mark",
			EndTime: secondsAfterEpoch(3 * time.Millisecond),
		})

		Expect(tracer.TotalTime()).To(Equal(4 * time.Millisecond))
		Expect(tracer.MaxTime()).To(Equal(3 * time.Millisecond))
		Expect(tracer.PauseCount()).To(Equal(uint64(2)))
	})

	It("should ignore an end without a matching start", func() {
		tracer.EndPause(PauseEvent{
			GCID:    1,
			Name:    "Init Mark",
			EndTime: secondsAfterEpoch(time.Millisecond),
		})

		Expect(tracer.PauseCount()).To(Equal(uint64(0)))
		Expect(tracer.TotalTime()).To(Equal(time.Duration(0)))
	})
})
