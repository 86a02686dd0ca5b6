package rope

// chunkFrame is one tree position in a chunk traversal.
type chunkFrame struct {
	node     *node
	childIdx int
	chunkIdx int
	offset   int // absolute byte offset at the start of this node
}

// ChunkIterator walks the rope's storage chunks in document order.
// It lets callers hand text to a consumer piecewise, without
// materializing the whole document.
type ChunkIterator struct {
	rope    Rope
	stack   []chunkFrame
	started bool
	text    string
	start   int
}

// Chunks returns an iterator over all chunks.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{
		rope:  r,
		stack: make([]chunkFrame, 0, 8),
	}
}

// Next advances to the next chunk, reporting whether one exists.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkFrame{node: it.rope.root})
		return it.advance()
	}

	if len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		if frame.node.isLeaf() {
			frame.chunkIdx++
		}
	}
	return it.advance()
}

func (it *ChunkIterator) advance() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]
		n := frame.node

		if n.isLeaf() {
			if frame.chunkIdx < len(n.chunks) {
				off := frame.offset
				for i := 0; i < frame.chunkIdx; i++ {
					off += n.chunks[i].len()
				}
				it.text = n.chunks[frame.chunkIdx].data
				it.start = off
				return true
			}
			it.pop()
			continue
		}

		if frame.childIdx < len(n.children) {
			off := frame.offset
			for i := 0; i < frame.childIdx; i++ {
				off += n.childSummaries[i].Bytes
			}
			it.stack = append(it.stack, chunkFrame{
				node:   n.children[frame.childIdx],
				offset: off,
			})
			continue
		}

		it.pop()
	}
	return false
}

func (it *ChunkIterator) pop() {
	it.stack = it.stack[:len(it.stack)-1]
	if len(it.stack) > 0 {
		it.stack[len(it.stack)-1].childIdx++
	}
}

// Text returns the current chunk's text.
func (it *ChunkIterator) Text() string {
	return it.text
}

// Start returns the absolute byte offset of the current chunk.
func (it *ChunkIterator) Start() int {
	return it.start
}

// LineIterator walks the rope line by line. It is the read-only line
// access used by render layers; the iterator never mutates the rope.
type LineIterator struct {
	rope    Rope
	line    int
	text    string
	started bool
	done    bool
}

// Lines returns an iterator over all lines, including a final empty
// line after a trailing newline.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{rope: r}
}

// Next advances to the next line, reporting whether one exists.
func (it *LineIterator) Next() bool {
	if it.done {
		return false
	}
	if !it.started {
		it.started = true
	} else {
		it.line++
	}
	if it.line >= it.rope.LineCount() {
		it.done = true
		return false
	}
	it.text = it.rope.LineText(it.line)
	return true
}

// Text returns the current line without its terminator.
func (it *LineIterator) Text() string {
	return it.text
}

// Line returns the current zero-based line index.
func (it *LineIterator) Line() int {
	return it.line
}
