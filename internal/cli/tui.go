package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bmpedit/pkg/bitmap"
	"github.com/matzehuels/bmpedit/pkg/bitmap/transform"
	"github.com/matzehuels/bmpedit/pkg/pipeline"
)

var (
	menuKeyStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	menuItemStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	menuDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	menuStatusStyle = lipgloss.NewStyle().Foreground(colorGreen)
	menuErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

type editorMode int

const (
	modeMenu editorMode = iota
	modeSave
)

// appliedMsg reports a finished transform.
type appliedMsg struct {
	op   string
	grid *bitmap.Grid
	took time.Duration
	err  error
}

// savedMsg reports a finished save.
type savedMsg struct {
	path string
	err  error
}

// EditorModel is the bubbletea model behind "bmpedit edit": a menu of
// single-key transforms applied to one in-memory bitmap, plus save and quit.
type EditorModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   transform.Options

	Path    string
	Grid    *bitmap.Grid
	History []string // applied op names, oldest first
	Saved   []string // paths written so far

	mode   editorMode
	input  []rune
	busy   bool
	status string
	err    error
}

// NewEditorModel creates an editor for g, loaded from path.
func NewEditorModel(ctx context.Context, runner *pipeline.Runner, path string, g *bitmap.Grid, opts transform.Options) EditorModel {
	return EditorModel{
		ctx:    ctx,
		runner: runner,
		opts:   opts,
		Path:   path,
		Grid:   g,
	}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case appliedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.Grid = msg.grid
		m.History = append(m.History, msg.op)
		m.err = nil
		m.status = fmt.Sprintf("%s applied, now %s (%s)", msg.op, msg.grid, msg.took.Round(time.Microsecond))
		return m, nil

	case savedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.Saved = append(m.Saved, msg.path)
		m.err = nil
		m.status = "Saved to " + msg.path
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if m.mode == modeSave {
			return m.updateSave(msg)
		}
		return m.updateMenu(msg)
	}
	return m, nil
}

func (m EditorModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := strings.ToLower(msg.String())
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "s":
		m.mode = modeSave
		m.input = nil
		m.err = nil
		m.status = ""
		return m, nil
	}

	runes := []rune(key)
	if len(runes) != 1 {
		return m, nil
	}
	op, ok := transform.LookupKey(runes[0])
	if !ok {
		m.err = nil
		m.status = fmt.Sprintf("No option %q", msg.String())
		return m, nil
	}
	m.busy = true
	m.status = op.Label + " selected"
	return m, m.applyCmd(op.Name)
}

func (m EditorModel) updateSave(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeMenu
		m.status = "Save cancelled"
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(string(m.input))
		if name == "" {
			m.status = "Enter a filename"
			return m, nil
		}
		m.mode = modeMenu
		m.busy = true
		m.status = "Saving to " + name
		return m, m.saveCmd(name)
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

func (m EditorModel) applyCmd(op string) tea.Cmd {
	ctx, runner, g, opts := m.ctx, m.runner, m.Grid, m.opts
	return func() tea.Msg {
		start := time.Now()
		out, err := runner.Apply(ctx, g, []string{op}, opts)
		return appliedMsg{op: op, grid: out, took: time.Since(start), err: err}
	}
}

func (m EditorModel) saveCmd(path string) tea.Cmd {
	ctx, runner, g := m.ctx, m.runner, m.Grid
	return func() tea.Msg {
		return savedMsg{path: path, err: runner.Save(ctx, path, g)}
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Path))
	b.WriteString(menuDimStyle.Render(fmt.Sprintf("  %s", m.Grid)))
	b.WriteString("\n")
	if len(m.History) > 0 {
		b.WriteString(menuDimStyle.Render("applied: " + strings.Join(m.History, " "+iconArrow+" ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, op := range transform.All() {
		line := menuKeyStyle.Render(strings.ToUpper(string(op.Key))) + ") " + menuItemStyle.Render(op.Description)
		if !op.Fits(m.Grid) {
			line += menuDimStyle.Render("  (odd size, edge dropped)")
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("  " + menuKeyStyle.Render("S") + ") " + menuItemStyle.Render("Save") + "\n")
	b.WriteString("  " + menuKeyStyle.Render("Q") + ") " + menuItemStyle.Render("Quit") + "\n\n")

	switch {
	case m.mode == modeSave:
		b.WriteString("Enter filename: " + string(m.input) + "█")
	case m.err != nil:
		b.WriteString(menuErrorStyle.Render(iconError + " " + m.err.Error()))
	case m.status != "":
		b.WriteString(menuStatusStyle.Render(m.status))
	default:
		b.WriteString(menuDimStyle.Render("What would you like to do?"))
	}
	b.WriteString("\n")
	return b.String()
}
