package history

import (
	"fmt"

	"github.com/strandedit/strand/internal/core/cursor"
)

// Op identifies the kind of an Edit record.
type Op uint8

const (
	// OpInsert records one grapheme cluster inserted at CharIndex.
	OpInsert Op = iota

	// OpDelete records one grapheme cluster removed at CharIndex.
	OpDelete

	// OpGroup marks that the next GroupLen records form one logical
	// step.
	OpGroup
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpGroup:
		return "group"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Edit is one recorded character-level mutation. Records are owned by
// the journal that holds them and are never aliased.
type Edit struct {
	// Op is the record kind.
	Op Op

	// CharIndex is the absolute rune index of the mutation.
	CharIndex int

	// Text is the grapheme cluster inserted or removed. Empty for
	// OpGroup.
	Text string

	// Cursor is the caret position when the edit was recorded.
	Cursor cursor.Cursor

	// GroupLen is the number of records grouped; set for OpGroup only.
	GroupLen int
}
