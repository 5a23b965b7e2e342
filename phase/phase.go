// Package phase enumerates the units of GC work whose durations the
// instrumentation layer measures.
package phase

// A Phase identifies one named unit of GC work.
type Phase int32

// The phases of a concurrent collection cycle. NumPhases is the upper bound
// for validity checks and Invalid marks the absence of an active phase.
const (
	InitMark Phase = iota
	ScanRoots
	ConcurrentMark
	FinalMark
	Purge
	UpdateRoots
	InitEvac
	ConcurrentEvac
	InitUpdateRefs
	ConcurrentUpdateRefs
	FinalUpdateRefs
	FinalUpdateRefsRoots
	DegenUpdateRoots
	ConcurrentCleanup
	FullGC
	FullGCRoots
	NumPhases

	Invalid Phase = -1
)

var names = [NumPhases]string{
	"Init Mark",
	"Scan Roots",
	"Concurrent Mark",
	"Final Mark",
	"Purge",
	"Update Roots",
	"Init Evacuation",
	"Concurrent Evacuation",
	"Init Update Refs",
	"Concurrent Update Refs",
	"Final Update Refs",
	"Final Update Refs Roots",
	"Degenerated Update Roots",
	"Concurrent Cleanup",
	"Full GC",
	"Full GC Roots",
}

// Name returns the stable human-readable name of p. Passing a sentinel or an
// out-of-range value is a precondition violation.
func (p Phase) Name() string {
	if !p.Valid() {
		panic("phase out of range")
	}

	return names[p]
}

// Valid reports whether p denotes a real phase, rather than a sentinel.
func (p Phase) Valid() bool {
	return p >= 0 && p < NumPhases
}

// RootWork reports whether p touches the GC root set. Callers use this to
// decide whether root-set accounting applies.
func (p Phase) RootWork() bool {
	switch p {
	case ScanRoots,
		UpdateRoots,
		InitEvac,
		FinalUpdateRefsRoots,
		DegenUpdateRoots,
		FullGCRoots:
		return true
	default:
		return false
	}
}
