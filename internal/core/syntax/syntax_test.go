package syntax

import (
	"strings"
	"testing"
)

// fragLookup serves text in small fragments to exercise chunked reads.
type fragLookup struct {
	text string
	size int
}

func (l fragLookup) ChunkAt(byteOff int) string {
	if byteOff >= len(l.text) {
		return ""
	}
	end := byteOff + l.size
	if end > len(l.text) {
		end = len(l.text)
	}
	return l.text[byteOff:end]
}

func (l fragLookup) ByteLen() int {
	return len(l.text)
}

func TestReadAll(t *testing.T) {
	text := "scattered across many fragments"
	got := ReadAll(fragLookup{text: text, size: 5})
	if got != text {
		t.Errorf("ReadAll() = %q, want %q", got, text)
	}
}

func TestReadAllEmpty(t *testing.T) {
	if got := ReadAll(fragLookup{}); got != "" {
		t.Errorf("ReadAll(empty) = %q, want empty", got)
	}
}

func TestSpanParserLines(t *testing.T) {
	p := NewSpanParser()
	tree, err := p.Parse(fragLookup{text: "one\ntwo\nthree", size: 4}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var lines []Span
	for _, s := range tree.Spans() {
		if s.Kind == "line" {
			lines = append(lines, s)
		}
	}
	if len(lines) != 3 {
		t.Fatalf("got %d line spans, want 3", len(lines))
	}
	if lines[0].StartByte != 0 || lines[0].EndByte != 4 {
		t.Errorf("line 0 = [%d,%d), want [0,4)", lines[0].StartByte, lines[0].EndByte)
	}
	if lines[2].StartByte != 8 || lines[2].EndByte != 13 {
		t.Errorf("line 2 = [%d,%d), want [8,13)", lines[2].StartByte, lines[2].EndByte)
	}
}

func TestSpanParserBlocks(t *testing.T) {
	p := NewSpanParser()
	text := "fn main() { a { b } }"
	tree, err := p.Parse(fragLookup{text: text, size: 6}, nil)
	if err != nil {
		t.Fatal(err)
	}

	var blocks []Span
	for _, s := range tree.Spans() {
		if s.Kind == "block" {
			blocks = append(blocks, s)
		}
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d block spans, want 2", len(blocks))
	}

	inner := blocks[0]
	if inner.StartByte != strings.Index(text, "{ b") || inner.Depth != 2 {
		t.Errorf("inner block = %+v", inner)
	}
	outer := blocks[1]
	if outer.StartByte != strings.Index(text, "{") || outer.EndByte != len(text) || outer.Depth != 1 {
		t.Errorf("outer block = %+v", outer)
	}
}

func TestSpanParserUnbalanced(t *testing.T) {
	p := NewSpanParser()
	// A stray close brace must not panic or produce a block.
	tree, err := p.Parse(fragLookup{text: "} {", size: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range tree.Spans() {
		if s.Kind == "block" {
			t.Errorf("unbalanced text produced block span %+v", s)
		}
	}
}

func TestSpanParserIdempotent(t *testing.T) {
	p := NewSpanParser()
	lookup := fragLookup{text: "fn main() {}\n", size: 5}

	first, err := p.Parse(lookup, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.Parse(lookup, first)
	if err != nil {
		t.Fatal(err)
	}

	if !first.Equal(second) {
		t.Error("reparse without edits should yield an identical tree")
	}
	if p.Stats().Unchanged != 1 {
		t.Errorf("Unchanged = %d, want 1 (fast path should fire)", p.Stats().Unchanged)
	}
}

func TestSpanParserTracksByteLen(t *testing.T) {
	p := NewSpanParser()

	before, err := p.Parse(fragLookup{text: "fn main() {}", size: 64}, nil)
	if err != nil {
		t.Fatal(err)
	}

	after, err := p.Parse(fragLookup{text: "fn main() {x}", size: 64}, before)
	if err != nil {
		t.Fatal(err)
	}

	if after.ByteLen() != 13 {
		t.Errorf("ByteLen() = %d, want 13", after.ByteLen())
	}
	if after.Equal(before) {
		t.Error("edited document must produce a different tree")
	}
	if p.Stats().PrevOffered != 1 {
		t.Errorf("PrevOffered = %d, want 1", p.Stats().PrevOffered)
	}
}

func TestTreeSpanAt(t *testing.T) {
	tree := NewTree(20, []Span{
		{Kind: "line", StartByte: 0, EndByte: 20, Depth: 0},
		{Kind: "block", StartByte: 5, EndByte: 15, Depth: 1},
	})

	s, ok := tree.SpanAt(7)
	if !ok || s.Kind != "block" {
		t.Errorf("SpanAt(7) = %+v, %v; want inner block", s, ok)
	}

	s, ok = tree.SpanAt(2)
	if !ok || s.Kind != "line" {
		t.Errorf("SpanAt(2) = %+v, %v; want line", s, ok)
	}

	if _, ok := tree.SpanAt(25); ok {
		t.Error("SpanAt past end should report no span")
	}
}
