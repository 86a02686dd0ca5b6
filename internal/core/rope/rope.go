package rope

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Errors returned by rope operations.
var (
	// ErrOutOfBounds indicates a character index outside [0, CharLen].
	ErrOutOfBounds = errors.New("char index out of bounds")

	// ErrRangeInvalid indicates a range with end < start or bounds
	// outside the rope.
	ErrRangeInvalid = errors.New("invalid char range")
)

// Rope is an immutable character-indexed text rope. Editing operations
// return a new Rope; the receiver is never modified.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeaf()}
}

// FromString creates a rope from a string.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return fromChunks(splitIntoChunks(s))
}

func fromChunks(chunks []chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*node
	for i := 0; i < len(chunks); i += maxChunksPerLeaf {
		end := i + maxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafWithChunks(leafChunks))
	}
	return Rope{root: buildFromNodes(leaves)}
}

// CharLen returns the length in Unicode scalar values.
func (r Rope) CharLen() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Runes
}

// ByteLen returns the length in UTF-8 bytes.
func (r Rope) ByteLen() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.Bytes
}

// LineCount returns the number of lines: newline count + 1.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.Lines + 1
}

// IsEmpty reports whether the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.ByteLen() == 0
}

// String materializes the full text. Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.ByteLen())
	r.root.appendTo(&sb)
	return sb.String()
}

// SliceChars returns the text of the half-open rune range [start, end).
// Out-of-range bounds clamp.
func (r Rope) SliceChars(start, end int) string {
	if r.root == nil || start >= end {
		return ""
	}
	return r.SliceBytes(r.CharToByte(start), r.CharToByte(end))
}

// SliceBytes returns the text of the half-open byte range [start, end).
// Bounds must be rune boundaries; out-of-range bounds clamp.
func (r Rope) SliceBytes(start, end int) string {
	if r.root == nil || start >= end {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > r.ByteLen() {
		end = r.ByteLen()
	}
	var sb strings.Builder
	sb.Grow(end - start)
	r.root.appendByteRange(&sb, start, end)
	return sb.String()
}

// Insert inserts text before the given character index. The index must
// be within [0, CharLen] or ErrOutOfBounds is returned with the rope
// unchanged.
func (r Rope) Insert(charIdx int, text string) (Rope, error) {
	if charIdx < 0 || charIdx > r.CharLen() {
		return r, ErrOutOfBounds
	}
	if len(text) == 0 {
		return r, nil
	}
	if r.root == nil || r.IsEmpty() {
		return FromString(text), nil
	}

	byteOff := r.CharToByte(charIdx)
	if byteOff == 0 {
		return FromString(text).Concat(r), nil
	}
	if byteOff >= r.ByteLen() {
		return r.Concat(FromString(text)), nil
	}

	left, right := r.root.split(byteOff)
	mid := FromString(text)
	return Rope{root: concatNodes(concatNodes(left, mid.root), right)}, nil
}

// Delete removes the half-open rune range [start, end). Empty ranges
// are a no-op. Ranges outside the rope return ErrRangeInvalid with the
// rope unchanged.
func (r Rope) Delete(start, end int) (Rope, error) {
	if start > end || start < 0 || end > r.CharLen() {
		return r, ErrRangeInvalid
	}
	if start == end || r.root == nil {
		return r, nil
	}

	startByte := r.CharToByte(start)
	endByte := r.CharToByte(end)

	if startByte == 0 && endByte >= r.ByteLen() {
		return New(), nil
	}
	if startByte == 0 {
		_, right := r.root.split(endByte)
		return Rope{root: right}, nil
	}
	if endByte >= r.ByteLen() {
		left, _ := r.root.split(startByte)
		return Rope{root: left}, nil
	}

	left, rest := r.root.split(startByte)
	_, right := rest.split(endByte - startByte)
	return Rope{root: concatNodes(left, right)}, nil
}

// Concat joins two ropes.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.IsEmpty() {
		return other
	}
	if other.root == nil || other.IsEmpty() {
		return r
	}
	return Rope{root: concatNodes(r.root, other.root)}
}

// CharToByte converts a character index to a byte offset. Indices past
// the end clamp to ByteLen.
func (r Rope) CharToByte(charIdx int) int {
	if r.root == nil {
		return 0
	}
	return r.root.charToByte(charIdx)
}

// ByteToChar converts a byte offset (a rune boundary) to a character
// index. Offsets past the end clamp to CharLen.
func (r Rope) ByteToChar(byteOff int) int {
	if r.root == nil {
		return 0
	}
	return r.root.byteToChar(byteOff)
}

// LineToChar returns the character index of the start of a line.
// Lines past the last clamp to CharLen.
func (r Rope) LineToChar(line int) int {
	if r.root == nil {
		return 0
	}
	return r.root.lineStartChar(line)
}

// CharToLine returns the zero-based line index containing the given
// character index.
func (r Rope) CharToLine(charIdx int) int {
	if r.root == nil {
		return 0
	}
	return r.root.charToLine(charIdx)
}

// LineText returns the text of a line without its terminator.
func (r Rope) LineText(line int) string {
	start := r.LineToChar(line)
	return r.SliceChars(start, start+r.LineCharLen(line))
}

// LineCharLen returns the rune length of a line without its terminator.
func (r Rope) LineCharLen(line int) int {
	start := r.LineToChar(line)
	if line >= r.LineCount()-1 {
		return r.CharLen() - start
	}
	return r.LineToChar(line+1) - start - 1
}

// RuneAt returns the rune at the given character index.
func (r Rope) RuneAt(charIdx int) (rune, bool) {
	if r.root == nil || charIdx < 0 || charIdx >= r.CharLen() {
		return 0, false
	}
	byteOff := r.CharToByte(charIdx)
	data, start := r.root.chunkAt(byteOff)
	if byteOff-start >= len(data) {
		return 0, false
	}
	ch, _ := utf8.DecodeRuneInString(data[byteOff-start:])
	return ch, true
}

// ChunkAt returns the storage chunk containing the given byte offset
// and the chunk's absolute start offset. Offsets at or past ByteLen
// return an empty string, never an error: the parser boundary requires
// reads past end-of-buffer to yield empty text.
func (r Rope) ChunkAt(byteOff int) (string, int) {
	if r.root == nil {
		return "", 0
	}
	return r.root.chunkAt(byteOff)
}

// Equals reports whether two ropes hold the same text, independent of
// tree shape.
func (r Rope) Equals(other Rope) bool {
	if r.ByteLen() != other.ByteLen() || r.CharLen() != other.CharLen() {
		return false
	}
	a := r.Chunks()
	b := other.Chunks()
	var abuf, bbuf string
	for {
		if abuf == "" {
			if !a.Next() {
				return bbuf == "" && !b.Next()
			}
			abuf = a.Text()
		}
		if bbuf == "" {
			if !b.Next() {
				return false
			}
			bbuf = b.Text()
		}
		n := len(abuf)
		if len(bbuf) < n {
			n = len(bbuf)
		}
		if abuf[:n] != bbuf[:n] {
			return false
		}
		abuf = abuf[n:]
		bbuf = bbuf[n:]
	}
}

// Height returns the tree height; useful for balance tests.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}
