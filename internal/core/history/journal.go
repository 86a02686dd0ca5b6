package history

// DefaultJournalCapacity is the journal size used when none is
// configured.
const DefaultJournalCapacity = 1024

// Journal is a fixed-capacity ring of Edit records. Push is O(1); once
// the ring is full the oldest record is overwritten. Capacity is always
// a power of two so the ring index is a mask operation.
type Journal struct {
	edits []Edit
	next  int // index the next push writes to
	count int // number of live records, <= len(edits)
}

// NewJournal creates a journal. The capacity is rounded up to the next
// power of two; values < 1 fall back to DefaultJournalCapacity.
func NewJournal(capacity int) *Journal {
	if capacity < 1 {
		capacity = DefaultJournalCapacity
	}
	return &Journal{edits: make([]Edit, nextPowerOfTwo(capacity))}
}

// Push appends a record, evicting the oldest when full.
func (j *Journal) Push(e Edit) {
	j.edits[j.next] = e
	j.next = (j.next + 1) & (len(j.edits) - 1)
	if j.count < len(j.edits) {
		j.count++
	}
}

// PushGroup appends a group marker covering the next n records.
func (j *Journal) PushGroup(n int) {
	if n <= 0 {
		return
	}
	j.Push(Edit{Op: OpGroup, GroupLen: n})
}

// Len returns the number of live records.
func (j *Journal) Len() int {
	return j.count
}

// Cap returns the fixed capacity.
func (j *Journal) Cap() int {
	return len(j.edits)
}

// Recent returns up to n records, newest first. n < 0 returns all live
// records.
func (j *Journal) Recent(n int) []Edit {
	if n < 0 || n > j.count {
		n = j.count
	}
	out := make([]Edit, 0, n)
	for i := 1; i <= n; i++ {
		idx := (j.next - i) & (len(j.edits) - 1)
		out = append(out, j.edits[idx])
	}
	return out
}

// nextPowerOfTwo rounds n up to the nearest power of two.
func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
