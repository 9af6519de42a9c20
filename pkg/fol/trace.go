package fol

import "log"

// TraceEventKind classifies a single step an engine reports through a
// Tracer (spec.md §7, ambient stack §7.1).
type TraceEventKind string

const (
	// TraceProofStep is emitted by the backward-chaining engine each time
	// it resolves a goal against a clause.
	TraceProofStep TraceEventKind = "proof-step"
	// TraceResolutionStep is emitted by the resolution engine each time it
	// derives a new clause.
	TraceResolutionStep TraceEventKind = "resolution-step"
	// TraceCancelled is emitted once by the resolution engine, when its
	// search observes cancellation. The backward-chaining engine does not
	// emit it.
	TraceCancelled TraceEventKind = "cancelled"
)

// TraceEvent is one reported step of a proof or resolution search.
type TraceEvent struct {
	Kind    TraceEventKind
	Goal    Literal   // the literal being proved (backward chaining) or the empty Literal
	Clause  CNFClause // the clause used, or the derived resolvent
	Detail  string    // human-readable summary, e.g. the two parent clauses' String()
}

// Tracer receives TraceEvents from the backward-chaining and resolution
// engines. Neither engine requires a Tracer — a nil Tracer, or the zero
// value of NoopTracer, is the default — this is a hook for callers to build
// their own structured logging on top, not a logging framework this module
// imposes.
type Tracer interface {
	Trace(event TraceEvent)
}

// NoopTracer discards every event. It is the default used when a caller
// does not supply a Tracer.
type NoopTracer struct{}

// Trace implements Tracer.
func (NoopTracer) Trace(TraceEvent) {}

// LogTracer writes one formatted line per event via the standard log
// package — the teacher pack traces search internals this way
// (wfs_trace.go) rather than through a structured logging framework; no
// example in the retrieval pack demonstrates real call-site usage of one,
// so this module does not adopt one either (see DESIGN.md).
type LogTracer struct {
	// Prefix is written before every line, e.g. "[fol] ".
	Prefix string
}

// Trace implements Tracer.
func (t LogTracer) Trace(event TraceEvent) {
	prefix := t.Prefix
	if prefix == "" {
		prefix = "[fol] "
	}
	switch event.Kind {
	case TraceProofStep:
		log.Printf("%s%s goal=%s via=%s", prefix, event.Kind, event.Goal, event.Clause)
	case TraceResolutionStep:
		log.Printf("%s%s derived=%s (%s)", prefix, event.Kind, event.Clause, event.Detail)
	case TraceCancelled:
		log.Printf("%s%s %s", prefix, event.Kind, event.Detail)
	default:
		log.Printf("%s%s %+v", prefix, event.Kind, event)
	}
}
