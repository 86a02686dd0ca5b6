package history

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/strandedit/strand/internal/core/cursor"
)

// Errors returned by the replay stack.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultUndoLimit bounds the undo stack when no limit is configured.
const DefaultUndoLimit = 1000

// Operation is one undoable document mutation, captured as a snapshot
// rather than a pointer into the journal ring.
type Operation struct {
	// Start and End delimit the half-open rune range the operation
	// replaced in the pre-edit document. Insertions have Start == End.
	Start int
	End   int

	// OldText is the text the range held before the edit; NewText is
	// what replaced it.
	OldText string
	NewText string

	// Before and After are the caret on each side of the edit.
	Before cursor.Cursor
	After  cursor.Cursor

	// Timestamp records when the operation happened.
	Timestamp time.Time
}

// NewInsert builds the operation for an insertion at a rune index.
func NewInsert(charIdx int, text string, before, after cursor.Cursor) *Operation {
	return &Operation{
		Start:     charIdx,
		End:       charIdx,
		NewText:   text,
		Before:    before,
		After:     after,
		Timestamp: time.Now(),
	}
}

// NewDelete builds the operation for a deletion of [start, end).
func NewDelete(start, end int, removed string, before, after cursor.Cursor) *Operation {
	return &Operation{
		Start:     start,
		End:       end,
		OldText:   removed,
		Before:    before,
		After:     after,
		Timestamp: time.Now(),
	}
}

// NewEnd returns the end of the operation's range in the post-edit
// document.
func (op *Operation) NewEnd() int {
	return op.Start + utf8.RuneCountInString(op.NewText)
}

// Invert returns the operation that undoes this one.
func (op *Operation) Invert() *Operation {
	return &Operation{
		Start:     op.Start,
		End:       op.NewEnd(),
		OldText:   op.NewText,
		NewText:   op.OldText,
		Before:    op.After,
		After:     op.Before,
		Timestamp: time.Now(),
	}
}

// Stack holds bounded undo and redo stacks of operations.
type Stack struct {
	undo  []*Operation
	redo  []*Operation
	limit int
}

// NewStack creates a stack keeping at most limit undo entries. Values
// < 1 fall back to DefaultUndoLimit.
func NewStack(limit int) *Stack {
	if limit < 1 {
		limit = DefaultUndoLimit
	}
	return &Stack{limit: limit}
}

// Push records a new operation. The redo stack is cleared; the oldest
// undo entries are dropped past the limit.
func (s *Stack) Push(op *Operation) {
	s.undo = append(s.undo, op)
	s.redo = nil
	if len(s.undo) > s.limit {
		excess := len(s.undo) - s.limit
		s.undo = s.undo[excess:]
	}
}

// Undo pops the most recent operation and moves it to the redo stack.
// The caller applies the returned operation's inverse.
func (s *Stack) Undo() (*Operation, error) {
	if len(s.undo) == 0 {
		return nil, ErrNothingToUndo
	}
	op := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, op)
	return op, nil
}

// Redo pops the most recently undone operation and moves it back to
// the undo stack. The caller re-applies the returned operation.
func (s *Stack) Redo() (*Operation, error) {
	if len(s.redo) == 0 {
		return nil, ErrNothingToRedo
	}
	op := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, op)
	return op, nil
}

// CanUndo reports whether an undo entry is available.
func (s *Stack) CanUndo() bool {
	return len(s.undo) > 0
}

// CanRedo reports whether a redo entry is available.
func (s *Stack) CanRedo() bool {
	return len(s.redo) > 0
}

// Clear drops all entries.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}
