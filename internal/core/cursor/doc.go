// Package cursor provides the caret position value type.
//
// A Cursor is a (column, row) pair in character space: X counts runes
// from the start of the current line, Y is the zero-based line index.
// Cursor knows nothing about the text it points into; the primitives
// here are pure value moves, and buffer-aware clamping (line lengths,
// end of document) is the document's job. Each document owns exactly
// one Cursor and is its only mutator.
package cursor
