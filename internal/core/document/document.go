package document

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"

	"github.com/strandedit/strand/internal/core/cursor"
	"github.com/strandedit/strand/internal/core/history"
	"github.com/strandedit/strand/internal/core/observe"
	"github.com/strandedit/strand/internal/core/rope"
	"github.com/strandedit/strand/internal/core/syntax"
)

// Errors returned by document operations.
var (
	// ErrOutOfBounds indicates the computed character index exceeds the
	// buffer length. The mutation was aborted with no state change.
	ErrOutOfBounds = errors.New("char index out of bounds")

	// ErrParserConfigured indicates ConfigureParser was called twice;
	// the parsed state transition is one-way and one-time.
	ErrParserConfigured = errors.New("parser already configured")
)

// Document owns the text rope, the caret, the edit journal, the
// undo/redo stack and the optional parser binding.
type Document struct {
	id    string
	text  rope.Rope
	caret cursor.Cursor

	journal *history.Journal
	undos   *history.Stack

	parser syntax.Parser
	tree   *syntax.Tree

	sink observe.Sink

	// construction knobs, consumed by finish()
	journalCap int
	undoLimit  int
}

// New creates an empty document.
func New(opts ...Option) *Document {
	return FromString("", opts...)
}

// FromString creates a document with initial content.
func FromString(s string, opts ...Option) *Document {
	d := &Document{
		id:   uuid.NewString(),
		text: rope.FromString(s),
		sink: observe.NopSink{},
	}
	return d.finish(opts)
}

// FromReader creates a document from a byte stream. Content is assumed
// to be UTF-8.
func FromReader(r io.Reader, opts ...Option) (*Document, error) {
	text, err := rope.FromReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	d := &Document{
		id:   uuid.NewString(),
		text: text,
		sink: observe.NopSink{},
	}
	return d.finish(opts), nil
}

func (d *Document) finish(opts []Option) *Document {
	for _, opt := range opts {
		opt(d)
	}
	d.journal = history.NewJournal(d.journalCap)
	d.undos = history.NewStack(d.undoLimit)
	return d
}

// ID returns the document's identity used in diagnostics.
func (d *Document) ID() string {
	return d.id
}

// Read surface, consumed by render layers.

// Text materializes the full document text.
func (d *Document) Text() string {
	return d.text.String()
}

// Rope returns the current text snapshot. Ropes are immutable, so the
// returned value stays valid across later edits.
func (d *Document) Rope() rope.Rope {
	return d.text
}

// CharLen returns the document length in Unicode scalar values.
func (d *Document) CharLen() int {
	return d.text.CharLen()
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	return d.text.LineCount()
}

// Line returns the text of a line without its terminator.
func (d *Document) Line(i int) string {
	return d.text.LineText(i)
}

// Lines returns a read-only iterator over the document's lines.
func (d *Document) Lines() *rope.LineIterator {
	return d.text.Lines()
}

// Cursor returns the caret position.
func (d *Document) Cursor() cursor.Cursor {
	return d.caret
}

// Journal exposes the edit journal for inspection.
func (d *Document) Journal() *history.Journal {
	return d.journal
}

// Tree returns the retained parse tree, or nil while unparsed.
func (d *Document) Tree() *syntax.Tree {
	return d.tree
}

// Parsed reports whether a parser has been configured.
func (d *Document) Parsed() bool {
	return d.parser != nil
}

// WriteTo streams the document text to w chunk by chunk.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var total int64
	it := d.text.Chunks()
	for it.Next() {
		n, err := io.WriteString(w, it.Text())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// charIndex returns the caret's absolute rune index.
func (d *Document) charIndex() int {
	return d.text.LineToChar(d.caret.Y) + d.caret.X
}

// Mutation methods. Each either mutates rope, caret, journal and undo
// stack together and triggers a reparse, or fails leaving everything
// untouched.

// InsertRune inserts a single rune at the caret.
func (d *Document) InsertRune(ch rune) error {
	return d.InsertText(string(ch))
}

// InsertNewline inserts a line terminator at the caret.
func (d *Document) InsertNewline() error {
	return d.InsertText("\n")
}

// InsertText inserts text at the caret, advancing it grapheme cluster
// by grapheme cluster and recording one journal entry per cluster.
func (d *Document) InsertText(text string) error {
	if text == "" {
		return nil
	}

	charIdx := d.charIndex()
	if charIdx > d.text.CharLen() {
		err := fmt.Errorf("insert at %d past length %d: %w", charIdx, d.text.CharLen(), ErrOutOfBounds)
		d.reject("insert", charIdx, err)
		return err
	}

	newText, err := d.text.Insert(charIdx, text)
	if err != nil {
		err = fmt.Errorf("insert at %d: %w", charIdx, errOf(err))
		d.reject("insert", charIdx, err)
		return err
	}

	before := d.caret
	clusters := countClusters(text)
	if clusters > 1 {
		d.journal.PushGroup(clusters)
	}

	idx := charIdx
	caret := d.caret
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		d.journal.Push(history.Edit{
			Op:        history.OpInsert,
			CharIndex: idx,
			Text:      cluster,
			Cursor:    caret,
		})
		runes := utf8.RuneCountInString(cluster)
		if strings.HasSuffix(cluster, "\n") {
			caret = caret.Newline()
		} else {
			// X is a rune offset, so a multi-rune cluster advances it
			// by every scalar it contains.
			caret = cursor.New(caret.X+runes, caret.Y)
		}
		idx += runes
	}

	d.text = newText
	d.caret = caret
	d.undos.Push(history.NewInsert(charIdx, text, before, caret))

	d.applied("insert", charIdx, len(text))
	d.reparse()
	return nil
}

// DeleteBackward removes one rune before the caret. At the start of
// the document it is a no-op. Removing a line terminator joins the
// caret's line onto the previous one, placing the caret at the join
// point.
func (d *Document) DeleteBackward() error {
	charIdx := d.charIndex()
	if charIdx == 0 {
		return nil
	}

	removed := d.text.SliceChars(charIdx-1, charIdx)
	newText, err := d.text.Delete(charIdx-1, charIdx)
	if err != nil {
		err = fmt.Errorf("delete at %d: %w", charIdx-1, errOf(err))
		d.reject("delete", charIdx-1, err)
		return err
	}

	before := d.caret
	var caret cursor.Cursor
	if d.caret.X > 0 {
		caret = d.caret.Left()
	} else {
		// The removed rune was the previous line's terminator; land at
		// its old end, measured before the join.
		caret = cursor.New(d.text.LineCharLen(d.caret.Y-1), d.caret.Y-1)
	}

	d.journal.Push(history.Edit{
		Op:        history.OpDelete,
		CharIndex: charIdx - 1,
		Text:      removed,
		Cursor:    before,
	})

	d.text = newText
	d.caret = caret
	d.undos.Push(history.NewDelete(charIdx-1, charIdx, removed, before, caret))

	d.applied("delete", charIdx-1, len(removed))
	d.reparse()
	return nil
}

// Movement. All four are buffer-aware: the raw cursor primitives never
// see an index the buffer cannot satisfy.

// MoveLeft moves the caret one column left; at column zero it moves to
// the end of the previous line.
func (d *Document) MoveLeft() {
	if d.caret.X > 0 {
		d.caret = d.caret.Left()
		return
	}
	if d.caret.Y > 0 {
		d.caret = cursor.New(d.text.LineCharLen(d.caret.Y-1), d.caret.Y-1)
	}
}

// MoveRight moves the caret one column right, clamped at the line
// length.
func (d *Document) MoveRight() {
	if d.caret.X < d.text.LineCharLen(d.caret.Y) {
		d.caret = d.caret.Right()
	}
}

// MoveUp moves the caret one row up; at the first row it is a no-op.
func (d *Document) MoveUp() {
	d.caret = d.caret.Up()
}

// MoveDown moves the caret one row down; at the last row it is a
// no-op.
func (d *Document) MoveDown() {
	if d.caret.Y+1 < d.text.LineCount() {
		d.caret = d.caret.Down()
	}
}

// MoveTo places the caret at the given column and row, clamped to the
// buffer.
func (d *Document) MoveTo(x, y int) {
	if y < 0 {
		y = 0
	}
	if max := d.text.LineCount() - 1; y > max {
		y = max
	}
	if x < 0 {
		x = 0
	}
	if max := d.text.LineCharLen(y); x > max {
		x = max
	}
	d.caret = cursor.New(x, y)
}

// History replay.

// Undo reverts the most recent mutation and restores the caret that
// preceded it.
func (d *Document) Undo() error {
	op, err := d.undos.Undo()
	if err != nil {
		return err
	}
	d.apply(op.Invert())
	d.sink.Emit(observe.Event{Kind: observe.KindUndo, Document: d.id})
	d.reparse()
	return nil
}

// Redo re-applies the most recently undone mutation.
func (d *Document) Redo() error {
	op, err := d.undos.Redo()
	if err != nil {
		return err
	}
	d.apply(op)
	d.sink.Emit(observe.Event{Kind: observe.KindRedo, Document: d.id})
	d.reparse()
	return nil
}

// CanUndo reports whether an undo step is available.
func (d *Document) CanUndo() bool {
	return d.undos.CanUndo()
}

// CanRedo reports whether a redo step is available.
func (d *Document) CanRedo() bool {
	return d.undos.CanRedo()
}

// apply replaces [op.Start, op.End) with op.NewText and restores the
// caret. Operations come from the undo stack and should always be in
// range; a stack that has gone bad aborts the replay with buffer and
// caret untouched rather than desyncing them.
func (d *Document) apply(op *history.Operation) {
	text := d.text
	if op.End > op.Start {
		next, err := text.Delete(op.Start, op.End)
		if err != nil {
			d.reject("replay", op.Start, fmt.Errorf("replay delete [%d,%d): %w", op.Start, op.End, errOf(err)))
			return
		}
		text = next
	}
	if op.NewText != "" {
		next, err := text.Insert(op.Start, op.NewText)
		if err != nil {
			d.reject("replay", op.Start, fmt.Errorf("replay insert at %d: %w", op.Start, errOf(err)))
			return
		}
		text = next
	}
	d.text = text
	d.caret = op.After
}

// Parsing.

// ConfigureParser binds the parse oracle and performs the initial full
// parse. The transition is one-way and one-time.
func (d *Document) ConfigureParser(p syntax.Parser) error {
	if d.parser != nil {
		return ErrParserConfigured
	}
	if p == nil {
		return nil
	}
	d.parser = p
	d.sink.Emit(observe.Event{Kind: observe.KindParserConfigured, Document: d.id})
	d.reparse()
	return nil
}

// reparse hands the oracle a chunk lookup over the current rope and
// the previous tree, then retains the result. A missing parser is a
// silent no-op; a parser error keeps the old tree.
func (d *Document) reparse() {
	if d.parser == nil {
		return
	}

	tree, err := d.parser.Parse(textLookup{r: d.text}, d.tree)
	if err != nil {
		d.sink.Emit(observe.Event{
			Kind:     observe.KindReparseFailed,
			Document: d.id,
			Err:      err,
		})
		return
	}

	d.tree = tree
	d.sink.Emit(observe.Event{
		Kind:     observe.KindReparse,
		Document: d.id,
		Fields:   map[string]any{"bytes": tree.ByteLen()},
	})
}

// textLookup adapts the rope to the parser's read contract. It is
// constructed per parse call and holds an immutable snapshot, so the
// oracle can never observe a torn buffer.
type textLookup struct {
	r rope.Rope
}

func (l textLookup) ChunkAt(byteOff int) string {
	if byteOff < 0 || byteOff >= l.r.ByteLen() {
		return ""
	}
	data, start := l.r.ChunkAt(byteOff)
	if data == "" {
		return ""
	}
	return data[byteOff-start:]
}

func (l textLookup) ByteLen() int {
	return l.r.ByteLen()
}

// Diagnostics helpers.

func (d *Document) applied(op string, charIdx, bytes int) {
	d.sink.Emit(observe.Event{
		Kind:     observe.KindEditApplied,
		Document: d.id,
		Fields:   map[string]any{"op": op, "char_index": charIdx, "bytes": bytes},
	})
}

func (d *Document) reject(op string, charIdx int, err error) {
	d.sink.Emit(observe.Event{
		Kind:     observe.KindEditRejected,
		Document: d.id,
		Err:      err,
		Fields:   map[string]any{"op": op, "char_index": charIdx},
	})
}

// errOf maps rope sentinel errors onto the document's taxonomy.
func errOf(err error) error {
	if errors.Is(err, rope.ErrOutOfBounds) || errors.Is(err, rope.ErrRangeInvalid) {
		return ErrOutOfBounds
	}
	return err
}

// countClusters returns the number of grapheme clusters in s.
func countClusters(s string) int {
	n := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		n++
	}
	return n
}
