// Package editor ties the document core to the terminal shell.
package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/strandedit/strand/internal/config"
	"github.com/strandedit/strand/internal/core/document"
	"github.com/strandedit/strand/internal/core/history"
	"github.com/strandedit/strand/internal/core/observe"
	"github.com/strandedit/strand/internal/core/syntax"
	"github.com/strandedit/strand/internal/term"
)

// Options configures an Editor.
type Options struct {
	// Path is the file to edit. Empty opens a scratch buffer.
	Path string

	// ReadOnly rejects all mutations.
	ReadOnly bool

	Config config.Config
	Log    *zap.Logger
}

// Editor runs the main loop. All document access happens on the loop
// goroutine; the only cross-goroutine entry point is SetConfig.
type Editor struct {
	screen term.Screen
	view   *term.View
	doc    *document.Document

	path     string
	name     string
	readOnly bool
	dirty    bool

	log *zap.Logger

	pendingMu sync.Mutex
	pending   *config.Config
}

// New creates an editor over the given screen. The file at opts.Path
// is loaded if it exists.
func New(screen term.Screen, opts Options) (*Editor, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	doc, err := openDocument(opts, log)
	if err != nil {
		return nil, err
	}

	name := "[scratch]"
	if opts.Path != "" {
		name = filepath.Base(opts.Path)
	}

	var hl *term.Highlighter
	if opts.Config.View.Syntax && opts.Path != "" {
		hl = term.NewHighlighter(opts.Path, opts.Config.View.Theme)
		if !hl.Enabled() {
			hl = nil
		}
	}
	if hl != nil {
		if err := doc.ConfigureParser(syntax.NewSpanParser()); err != nil {
			return nil, err
		}
	}

	return &Editor{
		screen:   screen,
		view:     term.NewView(screen, opts.Config.Editor.TabWidth, hl),
		doc:      doc,
		path:     opts.Path,
		name:     name,
		readOnly: opts.ReadOnly,
		log:      log,
	}, nil
}

func openDocument(opts Options, log *zap.Logger) (*document.Document, error) {
	docOpts := []document.Option{
		document.WithJournalCapacity(opts.Config.Editor.HistoryLimit),
		document.WithUndoLimit(opts.Config.Editor.UndoLimit),
		document.WithSink(observe.NewZapSink(log)),
	}

	if opts.Path == "" {
		return document.New(docOpts...), nil
	}

	f, err := os.Open(opts.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return document.New(docOpts...), nil
		}
		return nil, fmt.Errorf("opening %s: %w", opts.Path, err)
	}
	defer f.Close()

	doc, err := document.FromReader(f, docOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", opts.Path, err)
	}
	return doc, nil
}

// Document exposes the underlying document for tests.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// SetConfig queues a configuration to apply on the loop goroutine. It
// takes effect before the next render.
func (e *Editor) SetConfig(cfg config.Config) {
	e.pendingMu.Lock()
	e.pending = &cfg
	e.pendingMu.Unlock()
}

// Quit unblocks the loop from another goroutine.
func (e *Editor) Quit() {
	e.screen.PostQuit()
}

// Run initializes the screen and processes events until quit.
func (e *Editor) Run() error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer e.screen.Fini()

	e.render()
	for {
		ev := e.screen.PollEvent()
		switch ev.Type {
		case term.EventInterrupt:
			return nil
		case term.EventKey:
			if quit := e.handleKey(ev); quit {
				return nil
			}
		case term.EventResize:
			// Render below picks up the new size.
		}
		e.applyPending()
		e.render()
	}
}

func (e *Editor) handleKey(ev term.Event) bool {
	switch ev.Key {
	case term.KeyCtrlQ:
		return true
	case term.KeyCtrlS:
		if err := e.Save(); err != nil {
			e.log.Error("save failed", zap.String("path", e.path), zap.Error(err))
		}
	case term.KeyCtrlZ:
		e.undo()
	case term.KeyCtrlY:
		e.redo()
	case term.KeyRune:
		e.edit(func() error { return e.doc.InsertRune(ev.Rune) })
	case term.KeyTab:
		e.edit(func() error { return e.doc.InsertRune('\t') })
	case term.KeyEnter:
		e.edit(func() error { return e.doc.InsertNewline() })
	case term.KeyBackspace:
		e.edit(func() error { return e.doc.DeleteBackward() })
	case term.KeyLeft:
		e.doc.MoveLeft()
	case term.KeyRight:
		e.doc.MoveRight()
	case term.KeyUp:
		e.doc.MoveUp()
	case term.KeyDown:
		e.doc.MoveDown()
	case term.KeyHome:
		e.doc.MoveTo(0, e.doc.Cursor().Y)
	case term.KeyEnd:
		c := e.doc.Cursor()
		e.doc.MoveTo(e.doc.CharLen(), c.Y)
	case term.KeyPageUp:
		e.page(-1)
	case term.KeyPageDown:
		e.page(1)
	}
	return false
}

func (e *Editor) edit(fn func() error) {
	if e.readOnly {
		return
	}
	if err := fn(); err != nil {
		e.log.Warn("edit rejected", zap.Error(err))
		return
	}
	e.dirty = true
}

func (e *Editor) undo() {
	if e.readOnly {
		return
	}
	if err := e.doc.Undo(); err != nil {
		if !errors.Is(err, history.ErrNothingToUndo) {
			e.log.Warn("undo failed", zap.Error(err))
		}
		return
	}
	e.dirty = true
}

func (e *Editor) redo() {
	if e.readOnly {
		return
	}
	if err := e.doc.Redo(); err != nil {
		if !errors.Is(err, history.ErrNothingToRedo) {
			e.log.Warn("redo failed", zap.Error(err))
		}
		return
	}
	e.dirty = true
}

func (e *Editor) page(dir int) {
	_, height := e.screen.Size()
	step := height - 1
	if step < 1 {
		step = 1
	}
	c := e.doc.Cursor()
	e.doc.MoveTo(c.X, c.Y+dir*step)
}

func (e *Editor) applyPending() {
	e.pendingMu.Lock()
	cfg := e.pending
	e.pending = nil
	e.pendingMu.Unlock()
	if cfg == nil {
		return
	}
	e.view.SetTabWidth(cfg.Editor.TabWidth)
	e.log.Info("configuration reloaded", zap.Int("tab_width", cfg.Editor.TabWidth))
}

func (e *Editor) render() {
	e.view.Render(e.doc, e.name, e.dirty)
}

// Save writes the buffer to its file via a temp file and rename, so a
// crash mid-write never truncates the original.
func (e *Editor) Save() error {
	if e.path == "" {
		return errors.New("no file name")
	}

	dir := filepath.Dir(e.path)
	tmp, err := os.CreateTemp(dir, ".strand-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := e.doc.WriteTo(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", e.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, e.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", e.path, err)
	}

	e.dirty = false
	e.log.Info("saved", zap.String("path", e.path), zap.Int("chars", e.doc.CharLen()))
	return nil
}
