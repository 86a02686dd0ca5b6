package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/strandedit/strand/internal/core/document"
)

// View renders a document into a Screen with a scrolling viewport and
// a one-row status line at the bottom.
type View struct {
	screen   Screen
	tabWidth int
	hl       *Highlighter

	scrollX int
	scrollY int
}

// NewView creates a view. A nil highlighter renders plain text.
func NewView(screen Screen, tabWidth int, hl *Highlighter) *View {
	if tabWidth < 1 {
		tabWidth = 4
	}
	return &View{screen: screen, tabWidth: tabWidth, hl: hl}
}

// SetTabWidth updates the rendered tab width, e.g. on config reload.
func (v *View) SetTabWidth(w int) {
	if w >= 1 {
		v.tabWidth = w
	}
}

// Render draws the document, the status line and the caret.
func (v *View) Render(d *document.Document, name string, dirty bool) {
	width, height := v.screen.Size()
	if width <= 0 || height <= 1 {
		return
	}
	textHeight := height - 1

	caret := d.Cursor()
	caretCol := v.displayCol(d.Line(caret.Y), caret.X)
	v.scrollTo(caret.Y, caretCol, width, textHeight)

	v.screen.Clear()
	for row := 0; row < textHeight; row++ {
		line := v.scrollY + row
		if line >= d.LineCount() {
			break
		}
		v.drawLine(row, d.Line(line), width)
	}
	v.drawStatus(d, name, dirty, width, height-1)

	v.screen.ShowCursor(caretCol-v.scrollX, caret.Y-v.scrollY)
	v.screen.Show()
}

// scrollTo adjusts the viewport so the caret stays visible.
func (v *View) scrollTo(row, col, width, textHeight int) {
	if row < v.scrollY {
		v.scrollY = row
	}
	if row >= v.scrollY+textHeight {
		v.scrollY = row - textHeight + 1
	}
	if col < v.scrollX {
		v.scrollX = col
	}
	if col >= v.scrollX+width {
		v.scrollX = col - width + 1
	}
}

// drawLine writes one text line at screen row, applying tab expansion
// and horizontal scroll.
func (v *View) drawLine(row int, text string, width int) {
	var segs []Segment
	if v.hl != nil {
		segs = v.hl.Line(text)
	} else {
		segs = []Segment{{Text: text, Style: tcell.StyleDefault}}
	}

	col := 0
	for _, seg := range segs {
		for _, ch := range seg.Text {
			if ch == '\t' {
				next := (col/v.tabWidth + 1) * v.tabWidth
				for ; col < next; col++ {
					v.put(col, row, ' ', seg.Style, width)
				}
				continue
			}
			v.put(col, row, ch, seg.Style, width)
			col += runewidth.RuneWidth(ch)
		}
	}
}

func (v *View) put(col, row int, ch rune, style tcell.Style, width int) {
	x := col - v.scrollX
	if x >= 0 && x < width {
		v.screen.SetContent(x, row, ch, style)
	}
}

func (v *View) drawStatus(d *document.Document, name string, dirty bool, width, row int) {
	mark := ""
	if dirty {
		mark = " [+]"
	}
	caret := d.Cursor()
	left := fmt.Sprintf(" %s%s", name, mark)
	right := fmt.Sprintf("Ln %d, Col %d ", caret.Y+1, caret.X+1)

	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, ch := range left {
		if col >= width {
			break
		}
		v.screen.SetContent(col, row, ch, style)
		col += runewidth.RuneWidth(ch)
	}
	for ; col < width-len(right); col++ {
		v.screen.SetContent(col, row, ' ', style)
	}
	for _, ch := range right {
		if col >= width {
			break
		}
		v.screen.SetContent(col, row, ch, style)
		col += runewidth.RuneWidth(ch)
	}
}

// displayCol maps a rune offset within line text to a screen column,
// accounting for tabs and wide runes.
func (v *View) displayCol(text string, x int) int {
	col := 0
	i := 0
	for _, ch := range text {
		if i >= x {
			break
		}
		if ch == '\t' {
			col = (col/v.tabWidth + 1) * v.tabWidth
		} else {
			col += runewidth.RuneWidth(ch)
		}
		i++
	}
	return col
}
