package cursor

import "fmt"

// Cursor is a caret position in character space. X is the rune offset
// within line Y; Y is the zero-based line index. Cursor is an immutable
// value type: movement methods return a new Cursor.
type Cursor struct {
	X int
	Y int
}

// New creates a cursor at the given column and row. Negative components
// clamp to zero.
func New(x, y int) Cursor {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return Cursor{X: x, Y: y}
}

// Left moves one column left within the line. At column zero it is a
// no-op; moving to the previous line is a document-level decision.
func (c Cursor) Left() Cursor {
	if c.X > 0 {
		c.X--
	}
	return c
}

// Right moves one column right, unconditionally. The caller is
// responsible for clamping against the line length first.
func (c Cursor) Right() Cursor {
	c.X++
	return c
}

// Up moves one row up and resets the column. At row zero it is a
// guarded no-op rather than an underflow.
func (c Cursor) Up() Cursor {
	if c.Y == 0 {
		return c
	}
	c.Y--
	c.X = 0
	return c
}

// Down moves one row down and resets the column. Clamping against the
// line count is the caller's job.
func (c Cursor) Down() Cursor {
	c.Y++
	c.X = 0
	return c
}

// Newline advances to the start of the next row; used when inserting a
// line terminator.
func (c Cursor) Newline() Cursor {
	c.Y++
	c.X = 0
	return c
}

// At returns a cursor at the given column and row, with negative
// components clamped.
func (c Cursor) At(x, y int) Cursor {
	return New(x, y)
}

// String returns "(x,y)" for diagnostics.
func (c Cursor) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
