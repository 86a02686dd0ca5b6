package history

import (
	"errors"
	"fmt"
	"testing"

	"github.com/strandedit/strand/internal/core/cursor"
)

func TestNewJournalRoundsCapacity(t *testing.T) {
	tests := []struct {
		request int
		want    int
	}{
		{0, DefaultJournalCapacity},
		{-5, DefaultJournalCapacity},
		{1, 1},
		{2, 2},
		{3, 4},
		{100, 128},
		{1024, 1024},
	}
	for _, tt := range tests {
		j := NewJournal(tt.request)
		if j.Cap() != tt.want {
			t.Errorf("NewJournal(%d).Cap() = %d, want %d", tt.request, j.Cap(), tt.want)
		}
	}
}

func TestJournalPushAndRecent(t *testing.T) {
	j := NewJournal(8)
	for i := 0; i < 5; i++ {
		j.Push(Edit{Op: OpInsert, CharIndex: i, Text: fmt.Sprintf("%d", i)})
	}

	if j.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", j.Len())
	}

	recent := j.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("len(Recent(3)) = %d, want 3", len(recent))
	}
	// Newest first.
	for i, e := range recent {
		if want := 4 - i; e.CharIndex != want {
			t.Errorf("Recent[%d].CharIndex = %d, want %d", i, e.CharIndex, want)
		}
	}
}

func TestJournalCapacityBound(t *testing.T) {
	const capacity = 16
	j := NewJournal(capacity)

	const pushed = 100
	for i := 0; i < pushed; i++ {
		j.Push(Edit{Op: OpInsert, CharIndex: i})
	}

	if j.Len() != capacity {
		t.Fatalf("Len() = %d, want %d", j.Len(), capacity)
	}

	all := j.Recent(-1)
	if len(all) != capacity {
		t.Fatalf("len(Recent(-1)) = %d, want %d", len(all), capacity)
	}
	// Exactly the capacity most-recent records survive.
	for i, e := range all {
		if want := pushed - 1 - i; e.CharIndex != want {
			t.Errorf("Recent[%d].CharIndex = %d, want %d", i, e.CharIndex, want)
		}
	}
}

func TestJournalGroupMarker(t *testing.T) {
	j := NewJournal(8)
	j.PushGroup(3)
	for i := 0; i < 3; i++ {
		j.Push(Edit{Op: OpInsert, CharIndex: i, Text: "a"})
	}

	all := j.Recent(-1)
	last := all[len(all)-1]
	if last.Op != OpGroup || last.GroupLen != 3 {
		t.Errorf("oldest record = %+v, want group of 3", last)
	}

	// Zero and negative groups are dropped.
	before := j.Len()
	j.PushGroup(0)
	j.PushGroup(-1)
	if j.Len() != before {
		t.Error("empty group markers should not be recorded")
	}
}

func TestOperationInvert(t *testing.T) {
	before := cursor.Cursor{X: 0, Y: 0}
	after := cursor.Cursor{X: 2, Y: 0}
	op := NewInsert(0, "ab", before, after)

	inv := op.Invert()
	if inv.Start != 0 || inv.End != 2 {
		t.Errorf("inverse range = [%d,%d), want [0,2)", inv.Start, inv.End)
	}
	if inv.OldText != "ab" || inv.NewText != "" {
		t.Errorf("inverse texts = %q -> %q, want ab -> empty", inv.OldText, inv.NewText)
	}
	if inv.Before != after || inv.After != before {
		t.Error("inverse should swap cursor snapshots")
	}

	// Inverting twice restores the original edit shape.
	back := inv.Invert()
	if back.Start != op.Start || back.End != op.End ||
		back.OldText != op.OldText || back.NewText != op.NewText {
		t.Error("double inversion should restore the operation")
	}
}

func TestOperationInvertUnicode(t *testing.T) {
	op := NewInsert(3, "世界", cursor.Cursor{}, cursor.Cursor{X: 2})
	if got := op.NewEnd(); got != 5 {
		t.Errorf("NewEnd() = %d, want 5 (rune count, not bytes)", got)
	}
}

func TestStackUndoRedo(t *testing.T) {
	s := NewStack(10)

	if _, err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty stack = %v, want ErrNothingToUndo", err)
	}
	if _, err := s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo on empty stack = %v, want ErrNothingToRedo", err)
	}

	op1 := NewInsert(0, "a", cursor.Cursor{}, cursor.Cursor{X: 1})
	op2 := NewInsert(1, "b", cursor.Cursor{X: 1}, cursor.Cursor{X: 2})
	s.Push(op1)
	s.Push(op2)

	got, err := s.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if got != op2 {
		t.Error("Undo should return the most recent operation")
	}
	if !s.CanRedo() {
		t.Error("CanRedo() should be true after an undo")
	}

	redone, err := s.Redo()
	if err != nil {
		t.Fatal(err)
	}
	if redone != op2 {
		t.Error("Redo should return the undone operation")
	}
}

func TestStackPushClearsRedo(t *testing.T) {
	s := NewStack(10)
	s.Push(NewInsert(0, "a", cursor.Cursor{}, cursor.Cursor{X: 1}))
	if _, err := s.Undo(); err != nil {
		t.Fatal(err)
	}

	s.Push(NewInsert(0, "b", cursor.Cursor{}, cursor.Cursor{X: 1}))
	if s.CanRedo() {
		t.Error("a new edit should clear the redo stack")
	}
}

func TestStackLimit(t *testing.T) {
	s := NewStack(3)
	for i := 0; i < 10; i++ {
		s.Push(NewInsert(i, "x", cursor.Cursor{X: i}, cursor.Cursor{X: i + 1}))
	}

	count := 0
	for s.CanUndo() {
		if _, err := s.Undo(); err != nil {
			t.Fatal(err)
		}
		count++
	}
	if count != 3 {
		t.Errorf("stack retained %d operations, want 3", count)
	}
}
