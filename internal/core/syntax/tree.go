package syntax

// Span is one node of a parse result: a byte range with a kind and the
// nesting depth it sits at.
type Span struct {
	Kind      string
	StartByte int
	EndByte   int
	Depth     int
}

// Tree is an immutable parse result. The document replaces its retained
// tree wholesale after each reparse; trees are never mutated in place.
type Tree struct {
	byteLen int
	spans   []Span
	hash    uint64
}

// NewTree builds a tree covering byteLen bytes from an ordered span
// list. The span slice is owned by the tree afterwards.
func NewTree(byteLen int, spans []Span) *Tree {
	return &Tree{byteLen: byteLen, spans: spans}
}

// NewTreeHashed builds a tree carrying a content hash, letting a parser
// recognize an unchanged document on the next parse.
func NewTreeHashed(byteLen int, spans []Span, hash uint64) *Tree {
	return &Tree{byteLen: byteLen, spans: spans, hash: hash}
}

// Hash returns the content hash recorded at parse time, or zero.
func (t *Tree) Hash() uint64 {
	return t.hash
}

// ByteLen returns the document length the tree was parsed from. A tree
// is stale when this disagrees with the live buffer.
func (t *Tree) ByteLen() int {
	return t.byteLen
}

// Spans returns the tree's spans in document order. Callers must not
// modify the slice.
func (t *Tree) Spans() []Span {
	return t.spans
}

// SpanAt returns the innermost span containing the byte offset.
func (t *Tree) SpanAt(byteOff int) (Span, bool) {
	best := -1
	for i, s := range t.spans {
		if s.StartByte <= byteOff && byteOff < s.EndByte {
			if best < 0 || s.Depth >= t.spans[best].Depth {
				best = i
			}
		}
	}
	if best < 0 {
		return Span{}, false
	}
	return t.spans[best], true
}

// Equal reports whether two trees are byte-identical results.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.byteLen != other.byteLen || len(t.spans) != len(other.spans) {
		return false
	}
	for i := range t.spans {
		if t.spans[i] != other.spans[i] {
			return false
		}
	}
	return true
}
