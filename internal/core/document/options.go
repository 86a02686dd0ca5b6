package document

import "github.com/strandedit/strand/internal/core/observe"

// Option configures a Document at construction.
type Option func(*Document)

// WithJournalCapacity sets the edit journal capacity. The value is
// rounded up to a power of two.
func WithJournalCapacity(n int) Option {
	return func(d *Document) {
		d.journalCap = n
	}
}

// WithUndoLimit bounds the undo stack.
func WithUndoLimit(n int) Option {
	return func(d *Document) {
		d.undoLimit = n
	}
}

// WithSink injects the diagnostics sink. The default discards events.
func WithSink(s observe.Sink) Option {
	return func(d *Document) {
		if s != nil {
			d.sink = s
		}
	}
}
