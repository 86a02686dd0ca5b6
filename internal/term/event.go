package term

// EventType identifies a terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventInterrupt
)

// Key names a special key. Printable input arrives as KeyRune with the
// Rune field set.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrlQ
	KeyCtrlS
	KeyCtrlZ
	KeyCtrlY
)

// Event is one input event from the terminal.
type Event struct {
	Type EventType

	Key  Key
	Rune rune

	Width, Height int
}
