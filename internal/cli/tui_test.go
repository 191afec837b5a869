package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/bitmap/transform"
	"github.com/matzehuels/bmpedit/pkg/bmp"
	"github.com/matzehuels/bmpedit/pkg/pipeline"
	"github.com/matzehuels/bmpedit/pkg/pixel"
)

func testEditor(t *testing.T, w, h int) EditorModel {
	t.Helper()
	g := bitmap.New(w, h)
	for i := range g.Pixels {
		g.Pixels[i] = pixel.Pack(i*30, 200-i*10, i*7)
	}
	runner := pipeline.NewRunner(nil, nil, log.NewWithOptions(io.Discard, log.Options{}))
	return NewEditorModel(context.Background(), runner, "in.bmp", g, transform.Options{})
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press sends msg and, when the model answers with a command, feeds the
// command's message back in.
func press(t *testing.T, m EditorModel, msg tea.Msg) (EditorModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(EditorModel)
	if cmd == nil {
		return m, nil
	}
	out := cmd()
	switch out.(type) {
	case appliedMsg, savedMsg:
		next, cmd = m.Update(out)
		return next.(EditorModel), cmd
	}
	return m, cmd
}

func TestEditorAppliesMenuKeys(t *testing.T) {
	tests := []struct {
		key   rune
		op    string
		apply func(*bitmap.Grid) *bitmap.Grid
	}{
		{'g', "grayscale", transform.Grayscale},
		{'P', "posterize", transform.Posterize},
		{'u', "squash", transform.Squash},
		{'M', "mirror", transform.Mirror},
		{'r', "reflect", transform.Reflect},
		{'O', "rotate", transform.Rotate},
		{'k', "skew", transform.Skew},
		{'H', "shrink", transform.Shrink},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			m := testEditor(t, 4, 2)
			want := tt.apply(m.Grid)

			m, _ = press(t, m, runeKey(tt.key))
			if !m.Grid.Equal(want) {
				t.Errorf("grid after %q = %v, want %v", tt.key, m.Grid, want)
			}
			if len(m.History) != 1 || m.History[0] != tt.op {
				t.Errorf("History = %v, want [%s]", m.History, tt.op)
			}
		})
	}
}

func TestEditorSelectedStatus(t *testing.T) {
	tests := []struct {
		key  rune
		want string
	}{
		{'g', "Grayscale selected"},
		{'p', "Posterized selected"},
		{'u', "Squash selected"},
		{'m', "Mirror selected"},
		{'r', "Reflect selected"},
		{'o', "Rotate selected"},
		{'k', "Skew selected"},
		{'h', "Shrink selected"},
	}
	for _, tt := range tests {
		next, cmd := testEditor(t, 2, 2).Update(runeKey(tt.key))
		m := next.(EditorModel)
		if cmd == nil {
			t.Errorf("%q: no command issued", tt.key)
		}
		if m.status != tt.want {
			t.Errorf("%q: status = %q, want %q", tt.key, m.status, tt.want)
		}
	}
}

func TestEditorChainsEdits(t *testing.T) {
	m := testEditor(t, 3, 2)
	want := transform.Rotate(transform.Mirror(m.Grid))

	m, _ = press(t, m, runeKey('m'))
	m, _ = press(t, m, runeKey('o'))
	if !m.Grid.Equal(want) {
		t.Errorf("grid = %v, want %v", m.Grid, want)
	}
	if got := strings.Join(m.History, ","); got != "mirror,rotate" {
		t.Errorf("History = %s, want mirror,rotate", got)
	}
}

func TestEditorUnknownKey(t *testing.T) {
	m := testEditor(t, 2, 2)
	before := m.Grid
	m, cmd := press(t, m, runeKey('z'))
	if cmd != nil {
		t.Error("unknown key should not produce a command")
	}
	if m.Grid != before || len(m.History) != 0 {
		t.Error("unknown key should leave the image untouched")
	}
	if !strings.Contains(m.View(), "No option") {
		t.Error("view should report the unknown option")
	}
}

func TestEditorQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runeKey('q'), runeKey('Q'), {Type: tea.KeyCtrlC}} {
		m := testEditor(t, 2, 2)
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: command did not quit", msg)
		}
	}
}

func TestEditorSavePrompt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my out.bmp")

	m := testEditor(t, 3, 3)
	m, _ = press(t, m, runeKey('S'))
	if m.mode != modeSave {
		t.Fatal("S should open the filename prompt")
	}

	// menu keys are filename text while prompting
	for _, r := range filepath.Join(dir, "my") {
		m, _ = press(t, m, runeKey(r))
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	for _, r := range "outx" {
		m, _ = press(t, m, runeKey(r))
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	for _, r := range ".bmp" {
		m, _ = press(t, m, runeKey(r))
	}
	if len(m.History) != 0 {
		t.Fatalf("typing a filename applied transforms: %v", m.History)
	}
	if !strings.Contains(m.View(), "Enter filename: "+path) {
		t.Errorf("prompt view = %q", m.View())
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeMenu {
		t.Error("enter should close the prompt")
	}
	if len(m.Saved) != 1 || m.Saved[0] != path {
		t.Fatalf("Saved = %v, want [%s]", m.Saved, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := bmp.Decode(data)
	if err != nil {
		t.Fatalf("Decode saved file: %v", err)
	}
	if !got.Equal(m.Grid) {
		t.Errorf("saved image = %v, want %v", got, m.Grid)
	}
}

func TestEditorSaveCancelAndEmpty(t *testing.T) {
	m := testEditor(t, 2, 2)
	m, _ = press(t, m, runeKey('s'))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.mode != modeSave {
		t.Error("empty filename should keep prompting")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeMenu || len(m.Saved) != 0 {
		t.Error("esc should cancel the save")
	}
}

func TestEditorSaveError(t *testing.T) {
	m := testEditor(t, 2, 2)
	m, _ = press(t, m, runeKey('s'))
	for _, r := range filepath.Join(t.TempDir(), "missing", "out.bmp") {
		m, _ = press(t, m, runeKey(r))
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.Saved) != 0 {
		t.Error("save into a missing directory should fail")
	}
	if !strings.Contains(m.View(), "IO_ERROR") {
		t.Errorf("view should show the error, got %q", m.View())
	}
}
