// Package syntax defines the incremental parser boundary.
//
// The document core does not parse text itself. After every mutation it
// hands a TextLookup and the previously retained Tree to a Parser and
// keeps whatever comes back. The lookup is valid only for the duration
// of one Parse call and must never be stored by an implementation.
package syntax

// TextLookup supplies document text to a parser in contiguous
// fragments. Implementations are backed by chunked storage; a parser
// must not assume the whole document lives in one region.
type TextLookup interface {
	// ChunkAt returns a fragment of text beginning exactly at the
	// given byte offset, extending at most to the end of the
	// underlying storage chunk. Out-of-range offsets, negative
	// included, return the empty string; the call never fails.
	ChunkAt(byteOff int) string

	// ByteLen returns the document length in bytes.
	ByteLen() int
}

// Parser is the incremental parse oracle. Parse receives the previous
// tree as a reuse hint, or nil on the first parse, and returns the
// replacement tree. Implementations must not retain lookup.
type Parser interface {
	Parse(lookup TextLookup, prev *Tree) (*Tree, error)
}

// ReadAll drains a TextLookup into one string. Helper for parsers that
// genuinely need contiguous text; chunk-aware parsers should iterate
// ChunkAt themselves.
func ReadAll(lookup TextLookup) string {
	var out []byte
	off := 0
	for {
		frag := lookup.ChunkAt(off)
		if frag == "" {
			return string(out)
		}
		out = append(out, frag...)
		off += len(frag)
	}
}
