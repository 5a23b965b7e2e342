// Package gc holds the primitives shared by the instrumentation layer: the
// collection cause, the before/after markers, the monotonic clock
// abstraction, GC and trace-row id generation, and the hook mechanism that
// connects scope brackets to trace sinks.
package gc
