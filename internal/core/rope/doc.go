// Package rope implements a character-indexed rope for text storage.
//
// The rope is a balanced tree of immutable string chunks. Every node
// carries a summary of bytes, runes and newlines for its subtree, so
// insert, delete, slicing and index translation are all O(log n) in
// document length and no operation copies the whole document.
//
// Two index spaces are exposed: character indices (Unicode scalar
// values), used for cursor math, and byte offsets, used at the parser
// boundary. CharToByte and ByteToChar translate between them.
//
// Ropes are immutable values. Editing operations return a new Rope and
// leave the receiver untouched, which makes snapshots free and read
// access safe to share.
package rope
