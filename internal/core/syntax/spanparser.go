package syntax

import "hash/fnv"

// SpanParser is a lightweight structural parser used as the built-in
// oracle: it produces one span per line plus block spans for balanced
// braces, tracking nesting depth. It is not a language grammar; it
// exists so the document's reparse path is exercised end to end without
// an external parser.
//
// When the previous tree's content hash matches the current text the
// previous tree is returned as-is, so an unchanged document reparses in
// one streaming pass over the chunks and allocates nothing.
type SpanParser struct {
	stats Stats
}

// Stats counts parser activity, mainly for tests and diagnostics.
type Stats struct {
	// Parses is the total number of Parse calls.
	Parses int

	// PrevOffered counts calls that received a previous tree.
	PrevOffered int

	// Unchanged counts calls resolved by the content-hash fast path.
	Unchanged int
}

// NewSpanParser creates a span parser.
func NewSpanParser() *SpanParser {
	return &SpanParser{}
}

// Stats returns a copy of the accumulated counters.
func (p *SpanParser) Stats() Stats {
	return p.stats
}

// Parse implements Parser.
func (p *SpanParser) Parse(lookup TextLookup, prev *Tree) (*Tree, error) {
	p.stats.Parses++
	if prev != nil {
		p.stats.PrevOffered++
	}

	byteLen := lookup.ByteLen()
	hash := hashChunks(lookup)

	if prev != nil && prev.ByteLen() == byteLen && prev.Hash() == hash {
		p.stats.Unchanged++
		return prev, nil
	}

	spans := p.scan(lookup, byteLen)
	return NewTreeHashed(byteLen, spans, hash), nil
}

// scan walks the text chunk by chunk, emitting line spans and brace
// block spans.
func (p *SpanParser) scan(lookup TextLookup, byteLen int) []Span {
	var spans []Span
	var open []int // start offsets of unclosed braces

	depth := 0
	lineStart := 0
	off := 0

	flushLine := func(end int) {
		spans = append(spans, Span{
			Kind:      "line",
			StartByte: lineStart,
			EndByte:   end,
			Depth:     depth,
		})
	}

	for off < byteLen {
		frag := lookup.ChunkAt(off)
		if frag == "" {
			break
		}
		for i := 0; i < len(frag); i++ {
			abs := off + i
			switch frag[i] {
			case '\n':
				flushLine(abs + 1)
				lineStart = abs + 1
			case '{':
				open = append(open, abs)
				depth++
			case '}':
				if len(open) > 0 {
					start := open[len(open)-1]
					open = open[:len(open)-1]
					spans = append(spans, Span{
						Kind:      "block",
						StartByte: start,
						EndByte:   abs + 1,
						Depth:     depth,
					})
					depth--
				}
			}
		}
		off += len(frag)
	}

	if lineStart < byteLen || byteLen == 0 {
		flushLine(byteLen)
	}
	return spans
}

// hashChunks computes an FNV-1a hash of the full text without
// materializing it.
func hashChunks(lookup TextLookup) uint64 {
	h := fnv.New64a()
	off := 0
	for {
		frag := lookup.ChunkAt(off)
		if frag == "" {
			return h.Sum64()
		}
		h.Write([]byte(frag))
		off += len(frag)
	}
}
