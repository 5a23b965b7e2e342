// Package tracing turns the hook events emitted by the scope brackets into
// structured trace records.
//
// The brackets in gcscope invoke hooks at fixed positions; this package
// defines the event payloads carried by those hooks, the Tracer interface
// that trace sinks implement, and concrete tracers that persist events to a
// database, to CSV, or aggregate pause statistics in memory.
package tracing
