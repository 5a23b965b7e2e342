package gc

// Cause describes why a collection cycle was started.
type Cause int32

// The causes a collector can report. CauseNone means no collection is in
// progress.
const (
	CauseNone Cause = iota
	CauseAllocFailure
	CauseAllocRate
	CauseFreeThreshold
	CauseExplicit
	CauseMetadataPressure
	CauseFullGC
	numCauses
)

var causeNames = [numCauses]string{
	"No GC",
	"Allocation Failure",
	"Allocation Rate",
	"Free Threshold",
	"System.gc()",
	"Metadata Pressure",
	"Full GC",
}

func (c Cause) String() string {
	if c < 0 || c >= numCauses {
		panic("cause out of range")
	}

	return causeNames[c]
}

// When distinguishes heap-state snapshots taken before and after a cycle.
type When int

// Snapshot positions.
const (
	BeforeGC When = iota
	AfterGC
)

func (w When) String() string {
	switch w {
	case BeforeGC:
		return "Before GC"
	case AfterGC:
		return "After GC"
	default:
		panic("when out of range")
	}
}
