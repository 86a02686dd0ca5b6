package rope

import (
	"io"
	"strings"
)

// Builder accumulates text and assembles a rope in one pass. The zero
// value is ready to use.
type Builder struct {
	chunks []chunk
	buf    strings.Builder
	total  int
}

// WriteString appends a string.
func (b *Builder) WriteString(s string) {
	if len(s) == 0 {
		return
	}
	b.total += len(s)
	b.buf.WriteString(s)
	if b.buf.Len() >= maxChunkSize*2 {
		b.flush()
	}
}

// Write implements io.Writer.
func (b *Builder) Write(p []byte) (int, error) {
	b.WriteString(string(p))
	return len(p), nil
}

func (b *Builder) flush() {
	if b.buf.Len() == 0 {
		return
	}
	s := b.buf.String()
	b.buf.Reset()
	b.chunks = append(b.chunks, splitIntoChunks(s)...)
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.total
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buf.Reset()
	b.total = 0
}

// Build assembles the rope from accumulated text and resets the builder.
func (b *Builder) Build() Rope {
	b.flush()
	if len(b.chunks) == 0 {
		b.Reset()
		return New()
	}
	chunks := b.chunks
	b.chunks = nil
	b.Reset()
	return fromChunks(chunks)
}

// FromReader creates a rope from an io.Reader. Content is assumed to
// be UTF-8.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Rope{}, err
		}
	}
	return b.Build(), nil
}
