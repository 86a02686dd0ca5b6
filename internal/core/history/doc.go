// Package history records document edits.
//
// Two structures live here. Journal is a fixed-capacity ring of Edit
// records, one per inserted or removed grapheme cluster; once full, the
// oldest records are silently overwritten. The journal is write-mostly:
// its only read path is Recent, which walks records newest to oldest.
//
// Stack is the replay component: bounded undo/redo stacks of Operation
// snapshots, each capturing the text range touched, the text before and
// after, and the cursor on both sides. It is deliberately decoupled
// from the journal's ring so replay never depends on ring eviction.
//
// Neither structure locks; the owning document is single-writer.
package history
