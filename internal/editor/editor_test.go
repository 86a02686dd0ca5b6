package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/strandedit/strand/internal/config"
	"github.com/strandedit/strand/internal/term"
)

func newTestEditor(t *testing.T, opts Options) (*Editor, *term.Mem) {
	t.Helper()
	screen := term.NewMem(40, 10)
	opts.Config = config.Default()
	ed, err := New(screen, opts)
	if err != nil {
		t.Fatal(err)
	}
	return ed, screen
}

// run drives the editor loop in the background and returns a wait
// function.
func run(t *testing.T, ed *Editor) func() {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- ed.Run() }()
	return func() {
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("Run() = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("editor loop did not exit")
		}
	}
}

func key(k term.Key) term.Event {
	return term.Event{Type: term.EventKey, Key: k}
}

func keyRune(r rune) term.Event {
	return term.Event{Type: term.EventKey, Key: term.KeyRune, Rune: r}
}

func TestTypeAndQuit(t *testing.T) {
	ed, screen := newTestEditor(t, Options{})
	wait := run(t, ed)

	for _, r := range "hi" {
		screen.Feed(keyRune(r))
	}
	screen.Feed(key(term.KeyEnter))
	screen.Feed(keyRune('!'))
	screen.Feed(key(term.KeyCtrlQ))
	wait()

	if got := ed.Document().Text(); got != "hi\n!" {
		t.Errorf("text = %q, want %q", got, "hi\n!")
	}
}

func TestBackspaceAndMovement(t *testing.T) {
	ed, screen := newTestEditor(t, Options{})
	wait := run(t, ed)

	for _, r := range "abc" {
		screen.Feed(keyRune(r))
	}
	screen.Feed(key(term.KeyBackspace))
	screen.Feed(key(term.KeyLeft))
	screen.Feed(keyRune('X'))
	screen.Feed(key(term.KeyCtrlQ))
	wait()

	if got := ed.Document().Text(); got != "aXb" {
		t.Errorf("text = %q, want %q", got, "aXb")
	}
}

func TestUndoRedoKeys(t *testing.T) {
	ed, screen := newTestEditor(t, Options{})
	wait := run(t, ed)

	screen.Feed(keyRune('a'))
	screen.Feed(keyRune('b'))
	screen.Feed(key(term.KeyCtrlZ))
	screen.Feed(key(term.KeyCtrlQ))
	wait()

	if got := ed.Document().Text(); got != "a" {
		t.Errorf("text after undo = %q, want %q", got, "a")
	}
}

func TestUndoOnFreshBufferStaysClean(t *testing.T) {
	ed, screen := newTestEditor(t, Options{})
	wait := run(t, ed)

	screen.Feed(key(term.KeyCtrlZ))
	screen.Feed(key(term.KeyCtrlY))
	screen.Feed(key(term.KeyCtrlQ))
	wait()

	if row := screen.Row(9); strings.Contains(row, "[+]") {
		t.Errorf("status %q marks an untouched buffer dirty", row)
	}
}

func TestReadOnlyIgnoresEdits(t *testing.T) {
	ed, screen := newTestEditor(t, Options{ReadOnly: true})
	wait := run(t, ed)

	screen.Feed(keyRune('x'))
	screen.Feed(key(term.KeyCtrlQ))
	wait()

	if got := ed.Document().Text(); got != "" {
		t.Errorf("read-only buffer mutated: %q", got)
	}
}

func TestSaveWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	ed, screen := newTestEditor(t, Options{Path: path})
	wait := run(t, ed)

	for _, r := range "saved" {
		screen.Feed(keyRune(r))
	}
	screen.Feed(key(term.KeyCtrlS))
	screen.Feed(key(term.KeyCtrlQ))
	wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "saved" {
		t.Errorf("file content = %q, want %q", data, "saved")
	}
}

func TestOpenExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ed, _ := newTestEditor(t, Options{Path: path})
	if got := ed.Document().Text(); got != "one\ntwo\n" {
		t.Errorf("loaded text = %q", got)
	}
}

func TestQuitUnblocksLoop(t *testing.T) {
	ed, _ := newTestEditor(t, Options{})
	wait := run(t, ed)

	ed.Quit()
	wait()
}

func TestSetConfigAppliesTabWidth(t *testing.T) {
	ed, screen := newTestEditor(t, Options{})
	wait := run(t, ed)

	cfg := config.Default()
	cfg.Editor.TabWidth = 2
	ed.SetConfig(cfg)

	screen.Feed(key(term.KeyTab))
	screen.Feed(keyRune('x'))
	screen.Feed(key(term.KeyCtrlQ))
	wait()

	// A 2-wide tab puts x at column 2.
	if got := screen.Row(0); got != "  x" {
		t.Errorf("row 0 = %q, want 2-space tab then x", got)
	}
}
