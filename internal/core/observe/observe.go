// Package observe carries diagnostics out of the editor core.
//
// The reference behavior this replaces was println logging scattered
// through mutation methods. The core instead emits structured events
// through an injected Sink, so it stays free of console coupling and
// tests assert on captured events instead of stdout text.
package observe

// Kind names a diagnostic event. Kinds are dotted paths, most general
// segment first.
type Kind string

const (
	// KindEditApplied fires after a successful buffer mutation.
	KindEditApplied Kind = "document.edit.applied"

	// KindEditRejected fires when a mutation is refused, e.g. an
	// out-of-bounds index. The buffer is unchanged.
	KindEditRejected Kind = "document.edit.rejected"

	// KindParserConfigured fires on the one-way transition to the
	// parsed state.
	KindParserConfigured Kind = "document.parser.configured"

	// KindReparse fires after each re-parse completes.
	KindReparse Kind = "document.reparse"

	// KindReparseFailed fires when the parser oracle returns an error.
	// The previously retained tree is kept.
	KindReparseFailed Kind = "document.reparse.failed"

	// KindUndo and KindRedo fire after history replay.
	KindUndo Kind = "document.history.undo"
	KindRedo Kind = "document.history.redo"
)

// Event is one diagnostic record.
type Event struct {
	// Kind identifies what happened.
	Kind Kind

	// Document is the emitting document's ID.
	Document string

	// Err is set on failure events.
	Err error

	// Fields holds event-specific values (indexes, lengths, counts).
	Fields map[string]any
}

// Sink consumes diagnostic events. Implementations must not retain the
// Fields map past the call.
type Sink interface {
	Emit(Event)
}

// NopSink discards all events. It is the default when no sink is
// injected.
type NopSink struct{}

// Emit implements Sink.
func (NopSink) Emit(Event) {}

// Recorder is a capturing sink for tests.
type Recorder struct {
	Events []Event
}

// Emit implements Sink.
func (r *Recorder) Emit(e Event) {
	r.Events = append(r.Events, e)
}

// ByKind returns the captured events of one kind, in order.
func (r *Recorder) ByKind(k Kind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}
