package term

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// Segment is a run of styled text within a line.
type Segment struct {
	Text  string
	Style tcell.Style
}

// Highlighter colors lines using a lexer picked from the file name. A
// file with no matching lexer renders plain.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style

	// most recent line, re-highlighted on every caret blink otherwise
	lastText string
	lastSegs []Segment
}

// NewHighlighter creates a highlighter for the given file name and
// theme. Peek the returned value's Enabled to see whether a lexer
// matched.
func NewHighlighter(filename, theme string) *Highlighter {
	h := &Highlighter{}

	lexer := lexers.Match(filename)
	if lexer == nil {
		return h
	}
	h.lexer = chroma.Coalesce(lexer)

	h.style = styles.Get(theme)
	if h.style == nil {
		h.style = styles.Fallback
	}
	return h
}

// Enabled reports whether a lexer matched the file name.
func (h *Highlighter) Enabled() bool {
	return h.lexer != nil
}

// Line tokenizes one line of text into styled segments. Lines are
// lexed independently, so multi-line constructs lose their state at
// line boundaries.
func (h *Highlighter) Line(text string) []Segment {
	if h.lexer == nil || text == "" {
		return []Segment{{Text: text, Style: tcell.StyleDefault}}
	}
	if text == h.lastText && h.lastSegs != nil {
		return h.lastSegs
	}

	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return []Segment{{Text: text, Style: tcell.StyleDefault}}
	}

	var segs []Segment
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		segs = append(segs, Segment{
			Text:  tok.Value,
			Style: h.styleFor(tok.Type),
		})
	}
	if segs == nil {
		segs = []Segment{{Text: text, Style: tcell.StyleDefault}}
	}

	h.lastText = text
	h.lastSegs = segs
	return segs
}

func (h *Highlighter) styleFor(t chroma.TokenType) tcell.Style {
	entry := h.style.Get(t)
	style := tcell.StyleDefault
	if entry.Colour.IsSet() {
		style = style.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}
