package rope

// Chunk size bounds control the granularity of leaf storage.
const (
	minChunkSize    = 128
	maxChunkSize    = 256
	targetChunkSize = (minChunkSize + maxChunkSize) / 2
)

// chunk is a bounded immutable string stored in leaf nodes, with its
// metrics precomputed.
type chunk struct {
	data    string
	summary Summary
}

func newChunk(s string) chunk {
	return chunk{data: s, summary: computeSummary(s)}
}

func (c chunk) len() int {
	return len(c.data)
}

func (c chunk) isEmpty() bool {
	return len(c.data) == 0
}

// split divides the chunk at a byte offset. The offset must be a rune
// boundary.
func (c chunk) split(byteOff int) (chunk, chunk) {
	if byteOff <= 0 {
		return chunk{}, c
	}
	if byteOff >= len(c.data) {
		return c, chunk{}
	}
	return newChunk(c.data[:byteOff]), newChunk(c.data[byteOff:])
}

// splitIntoChunks cuts a string into chunks of roughly targetChunkSize,
// cutting at rune boundaries and preferring to cut just after a newline.
func splitIntoChunks(s string) []chunk {
	if len(s) == 0 {
		return nil
	}
	if len(s) <= maxChunkSize {
		return []chunk{newChunk(s)}
	}

	var chunks []chunk
	remaining := s
	for len(remaining) > 0 {
		if len(remaining) <= maxChunkSize {
			chunks = append(chunks, newChunk(remaining))
			break
		}
		cut := findSplitPoint(remaining, targetChunkSize)
		chunks = append(chunks, newChunk(remaining[:cut]))
		remaining = remaining[cut:]
	}
	return chunks
}

// findSplitPoint picks a rune boundary near target, preferring the byte
// just after a nearby newline so lines tend not to straddle chunks.
func findSplitPoint(s string, target int) int {
	if target >= len(s) {
		return len(s)
	}

	lo := target - minChunkSize/4
	if lo < 0 {
		lo = 0
	}
	hi := target + minChunkSize/4
	if hi > len(s) {
		hi = len(s)
	}

	for i := target; i < hi; i++ {
		if s[i] == '\n' {
			return i + 1
		}
	}
	for i := target - 1; i >= lo; i-- {
		if s[i] == '\n' {
			return i + 1
		}
	}

	// Fall back to the nearest rune boundary at or after target.
	pos := target
	for pos < len(s) && !isRuneStart(s[pos]) {
		pos++
	}
	if pos >= len(s) {
		pos = target
		for pos > 0 && !isRuneStart(s[pos]) {
			pos--
		}
	}
	return pos
}

// isRuneStart reports whether b begins a UTF-8 sequence. Continuation
// bytes match 10xxxxxx.
func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
