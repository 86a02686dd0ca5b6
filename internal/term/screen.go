// Package term wraps the terminal for input and cell-based output.
package term

import (
	"github.com/gdamore/tcell/v2"
)

// Screen is the drawing and input surface the editor renders to. The
// in-memory implementation backs tests; the tcell implementation backs
// the real terminal.
type Screen interface {
	Init() error
	Fini()
	Size() (width, height int)
	SetContent(x, y int, ch rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
	Clear()
	Show()
	PollEvent() Event
	PostQuit()
}

// Terminal is the tcell-backed Screen.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates a terminal screen.
func NewTerminal() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: s}, nil
}

func (t *Terminal) Init() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	return nil
}

func (t *Terminal) Fini() {
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *Terminal) SetContent(x, y int, ch rune, style tcell.Style) {
	t.screen.SetContent(x, y, ch, nil, style)
}

func (t *Terminal) ShowCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.screen.HideCursor()
}

func (t *Terminal) Clear() {
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.screen.Show()
}

// PollEvent blocks for the next input event.
func (t *Terminal) PollEvent() Event {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return convertKey(ev)
		case *tcell.EventResize:
			w, h := ev.Size()
			return Event{Type: EventResize, Width: w, Height: h}
		case *tcell.EventInterrupt:
			return Event{Type: EventInterrupt}
		case nil:
			// Screen finalized.
			return Event{Type: EventInterrupt}
		}
	}
}

// PostQuit unblocks PollEvent from another goroutine.
func (t *Terminal) PostQuit() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func convertKey(ev *tcell.EventKey) Event {
	switch ev.Key() {
	case tcell.KeyRune:
		return Event{Type: EventKey, Key: KeyRune, Rune: ev.Rune()}
	case tcell.KeyEnter:
		return Event{Type: EventKey, Key: KeyEnter}
	case tcell.KeyTab:
		return Event{Type: EventKey, Key: KeyTab}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Event{Type: EventKey, Key: KeyBackspace}
	case tcell.KeyDelete:
		return Event{Type: EventKey, Key: KeyDelete}
	case tcell.KeyEscape:
		return Event{Type: EventKey, Key: KeyEscape}
	case tcell.KeyUp:
		return Event{Type: EventKey, Key: KeyUp}
	case tcell.KeyDown:
		return Event{Type: EventKey, Key: KeyDown}
	case tcell.KeyLeft:
		return Event{Type: EventKey, Key: KeyLeft}
	case tcell.KeyRight:
		return Event{Type: EventKey, Key: KeyRight}
	case tcell.KeyHome:
		return Event{Type: EventKey, Key: KeyHome}
	case tcell.KeyEnd:
		return Event{Type: EventKey, Key: KeyEnd}
	case tcell.KeyPgUp:
		return Event{Type: EventKey, Key: KeyPageUp}
	case tcell.KeyPgDn:
		return Event{Type: EventKey, Key: KeyPageDown}
	case tcell.KeyCtrlQ:
		return Event{Type: EventKey, Key: KeyCtrlQ}
	case tcell.KeyCtrlS:
		return Event{Type: EventKey, Key: KeyCtrlS}
	case tcell.KeyCtrlZ:
		return Event{Type: EventKey, Key: KeyCtrlZ}
	case tcell.KeyCtrlY:
		return Event{Type: EventKey, Key: KeyCtrlY}
	default:
		return Event{Type: EventKey, Key: KeyNone}
	}
}

// Mem is an in-memory Screen for tests. It records cell runes and the
// cursor position and feeds scripted events to PollEvent.
type Mem struct {
	width, height int
	cells         [][]rune

	cursorX, cursorY int
	cursorVisible    bool

	events chan Event
}

// NewMem creates an in-memory screen of the given size.
func NewMem(width, height int) *Mem {
	return &Mem{
		width:  width,
		height: height,
		events: make(chan Event, 64),
	}
}

func (m *Mem) Init() error {
	m.cells = make([][]rune, m.height)
	for i := range m.cells {
		m.cells[i] = blankRow(m.width)
	}
	return nil
}

func (m *Mem) Fini() {}

func (m *Mem) Size() (int, int) {
	return m.width, m.height
}

func (m *Mem) SetContent(x, y int, ch rune, _ tcell.Style) {
	if x >= 0 && x < m.width && y >= 0 && y < m.height {
		m.cells[y][x] = ch
	}
}

func (m *Mem) ShowCursor(x, y int) {
	m.cursorX, m.cursorY = x, y
	m.cursorVisible = true
}

func (m *Mem) HideCursor() {
	m.cursorVisible = false
}

func (m *Mem) Clear() {
	for i := range m.cells {
		m.cells[i] = blankRow(m.width)
	}
}

func (m *Mem) Show() {}

func (m *Mem) PollEvent() Event {
	return <-m.events
}

func (m *Mem) PostQuit() {
	m.events <- Event{Type: EventInterrupt}
}

// Feed queues an input event for PollEvent.
func (m *Mem) Feed(ev Event) {
	m.events <- ev
}

// Row returns the rendered text of screen row y with trailing blanks
// trimmed.
func (m *Mem) Row(y int) string {
	if y < 0 || y >= m.height {
		return ""
	}
	end := m.width
	for end > 0 && m.cells[y][end-1] == ' ' {
		end--
	}
	return string(m.cells[y][:end])
}

// CursorPos returns the cursor position and visibility.
func (m *Mem) CursorPos() (x, y int, visible bool) {
	return m.cursorX, m.cursorY, m.cursorVisible
}

func blankRow(w int) []rune {
	row := make([]rune, w)
	for i := range row {
		row[i] = ' '
	}
	return row
}
