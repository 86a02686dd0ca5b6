// Package document is the single point of mutation for editor text.
//
// A Document composes the rope, the caret, the edit journal, the
// undo/redo stack and an optional parser binding. Input handlers call
// the mutation methods here; render layers read lines and the caret
// back out. Every successful mutation leaves the rope and caret
// consistent, appends to the journal, and triggers a re-parse when a
// parser is configured.
//
// Documents are single-writer by design: one control thread owns a
// Document exclusively and nothing here locks. A future background
// reparse must hand off an immutable rope snapshot rather than share
// the live buffer.
package document
