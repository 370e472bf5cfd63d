package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/theme"
)

// Commands understood by the root model.
const (
	NewProject = "new project"
	Projects   = "projects"
	Help       = "help"
	Quit       = "quit"
)

// Known lists every command, used for tab completion.
var Known = []string{NewProject, Projects, Help, Quit}

var aliases = map[string]string{
	"new":  NewProject,
	"np":   NewProject,
	"list": Projects,
	"h":    Help,
	"q":    Quit,
	"exit": Quit,
}

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Normalize lowercases cmd, collapses inner whitespace and resolves
// aliases.
func Normalize(cmd string) string {
	cmd = strings.Join(strings.Fields(strings.ToLower(cmd)), " ")
	if full, ok := aliases[cmd]; ok {
		return full
	}
	return cmd
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	loc    *i18n.Localizer
	width  int
	height int
}

// New creates a new command palette model.
func New(loc *i18n.Localizer, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = loc.T("command.placeholder")
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(Known)
	ti.Width = width - 6

	return Model{
		input:  ti,
		loc:    loc,
		width:  width,
		height: height,
	}
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEnter {
		cmd := Normalize(m.input.Value())
		m.input.Reset()
		if cmd == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return CommandMsg(cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(m.loc.T("command.title"))

	content := lipgloss.JoinVertical(lipgloss.Left, title, m.input.View())

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input and clears it.
func (m *Model) Focus() tea.Cmd {
	m.input.Reset()
	return m.input.Focus()
}

// Blur releases keyboard focus.
func (m *Model) Blur() {
	m.input.Blur()
}
