package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/keys"
	"github.com/nhle/project-tracker/internal/model"
	"github.com/nhle/project-tracker/internal/progress"
	"github.com/nhle/project-tracker/internal/store"
	"github.com/nhle/project-tracker/internal/theme"
	"github.com/nhle/project-tracker/internal/timeline"
	"github.com/nhle/project-tracker/internal/ui"
	"github.com/nhle/project-tracker/internal/ui/checkpointform"
)

// detailLines is how many lines of a checkpoint's details are shown.
const detailLines = 3

// BackMsg signals the parent to navigate back to the project list.
type BackMsg struct{}

// LoadedMsg carries the project and its ordered checkpoints.
type LoadedMsg struct {
	Project     model.Project
	Checkpoints []model.Checkpoint
}

// ToggleMsg asks the parent to flip a checkpoint's done flag.
type ToggleMsg struct {
	CheckpointID string
}

// DeleteMsg asks the parent to delete a checkpoint.
type DeleteMsg struct {
	CheckpointID string
}

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirmDelete
)

// Model is the project detail view: header with timeline, then the
// checkpoint rows.
type Model struct {
	mode        mode
	store       store.Store
	keys        *keys.KeyMap
	loc         *i18n.Localizer
	projectID   string
	project     model.Project
	checkpoints []model.Checkpoint
	summary     progress.Summary
	loaded      bool
	selected    int
	viewport    viewport.Model
	form        checkpointform.Model
	confirm     *huh.Form
	confirmed   *bool
	target      model.Checkpoint
	width       int
	height      int
}

// New creates a detail view for projectID. Call Init to load it.
func New(s store.Store, k *keys.KeyMap, loc *i18n.Localizer, projectID string, width, height int) Model {
	m := Model{
		store:     s,
		keys:      k,
		loc:       loc,
		projectID: projectID,
		viewport:  viewport.New(width, 1),
		form:      checkpointform.New(loc, width, height),
		confirmed: new(bool),
		width:     width,
		height:    height,
	}
	m.resize()
	return m
}

// Init loads the project.
func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// ProjectID is the project being shown.
func (m Model) ProjectID() string {
	return m.projectID
}

// Capturing reports whether a form owns the keyboard.
func (m Model) Capturing() bool {
	return m.mode != modeBrowse
}

// Reload returns a command that reads the project and its checkpoints. A
// project that no longer exists sends the user back to the list.
func (m Model) Reload() tea.Cmd {
	s := m.store
	id := m.projectID
	return func() tea.Msg {
		ctx := context.Background()
		p, err := s.GetProject(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return BackMsg{}
		}
		if err != nil {
			return ui.ErrorMsg{Err: err}
		}
		cps, err := s.ListCheckpoints(ctx, id)
		if err != nil {
			return ui.ErrorMsg{Err: err}
		}
		return LoadedMsg{Project: *p, Checkpoints: cps}
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Project.ID != m.projectID {
			return m, nil
		}
		m.project = msg.Project
		m.checkpoints = msg.Checkpoints
		m.summary = progress.Compute(msg.Checkpoints)
		m.loaded = true
		m.selected = min(m.selected, max(len(m.checkpoints)-1, 0))
		m.resize()
		return m, nil

	case checkpointform.SubmittedMsg, checkpointform.CancelledMsg:
		m.mode = modeBrowse
		return m, nil
	}

	switch m.mode {
	case modeForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) current() (model.Checkpoint, bool) {
	if m.selected < 0 || m.selected >= len(m.checkpoints) {
		return model.Checkpoint{}, false
	}
	return m.checkpoints[m.selected], true
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.checkpoints)-1 {
			m.selected++
			m.resize()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.resize()
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		cp, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return ToggleMsg{CheckpointID: cp.ID} }

	case key.Matches(msg, m.keys.New):
		m.mode = modeForm
		return m, m.form.StartCreate(m.projectID)

	case key.Matches(msg, m.keys.Edit):
		cp, ok := m.current()
		if !ok {
			return m, nil
		}
		m.mode = modeForm
		return m, m.form.StartEdit(cp)

	case key.Matches(msg, m.keys.Delete):
		cp, ok := m.current()
		if !ok {
			return m, nil
		}
		m.target = cp
		*m.confirmed = false
		m.confirm = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.confirm.Init()
	}
	return m, nil
}

func (m Model) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(m.loc.T("checkpoint.delete.title", m.titleOf(m.target))).
				Description(m.loc.T("checkpoint.delete.message")).
				Affirmative(m.loc.T("action.delete")).
				Negative(m.loc.T("action.cancel")).
				Value(m.confirmed),
		),
	).
		WithKeyMap(ui.FormKeyMap()).
		WithWidth(ui.FormWidth(m.width)).
		WithHeight(ui.FormHeight(m.height))
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirm == nil {
		m.mode = modeBrowse
		return m, nil
	}
	mdl, cmd := m.confirm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirm = f
	}
	switch m.confirm.State {
	case huh.StateCompleted:
		m.mode = modeBrowse
		m.confirm = nil
		if !*m.confirmed {
			return m, nil
		}
		id := m.target.ID
		return m, func() tea.Msg { return DeleteMsg{CheckpointID: id} }
	case huh.StateAborted:
		m.mode = modeBrowse
		m.confirm = nil
		return m, nil
	}
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.form.View()
	case modeConfirmDelete:
		if m.confirm != nil {
			return lipgloss.NewStyle().Padding(1, 2).Render(m.confirm.View())
		}
	}
	if !m.loaded {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View())
}

func (m Model) innerWidth() int {
	return max(m.width-4, 10)
}

func (m Model) renderHeader() string {
	w := m.innerWidth()

	pct := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ProgressColor(m.summary.Fraction)).
		Render(m.loc.T("progress.percent", m.summary.Percent()))
	name := ui.Truncate(m.project.Name, w-lipgloss.Width(pct)-1)
	gap := max(w-lipgloss.Width(name)-lipgloss.Width(pct), 1)
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render(name) +
		strings.Repeat(" ", gap) + pct

	titles := make([]string, len(m.checkpoints))
	for i, cp := range m.checkpoints {
		titles[i] = m.titleOf(cp)
	}
	layout := timeline.Compute(m.summary.Total, m.summary.Completed, titles, float64(w), timeline.TerminalOptions())

	counts := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(m.loc.T("progress.completed", m.summary.Completed, m.summary.Total))

	parts := []string{title, ""}
	if m.summary.Total > 0 {
		parts = append(parts, renderTimeline(layout, w), "")
	}
	parts = append(parts, counts)

	return lipgloss.NewStyle().Padding(1, 2, 0).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) titleOf(cp model.Checkpoint) string {
	if strings.TrimSpace(cp.Title) == "" {
		return m.loc.T("checkpoint.untitled")
	}
	return cp.Title
}

// renderRows draws every checkpoint and returns the line range of the
// selected row so the viewport can keep it visible.
func (m Model) renderRows() (string, int, int) {
	if len(m.checkpoints) == 0 {
		empty := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true).Render(m.loc.T("checkpoint.empty"))
		return lipgloss.NewStyle().Padding(1, 2).Render(empty), 0, 0
	}

	w := m.innerWidth()
	var lines []string
	selStart, selEnd := 0, 0
	for i, cp := range m.checkpoints {
		if i == m.selected {
			selStart = len(lines)
		}
		lines = append(lines, renderRow(m.titleOf(cp), cp, i == m.selected, w)...)
		if i == m.selected {
			selEnd = len(lines)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), selStart, selEnd
}

func renderRow(title string, cp model.Checkpoint, selected bool, width int) []string {
	marker := lipgloss.NewStyle().Foreground(theme.ColorGray).Render("[ ]")
	titleStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	if cp.IsDone {
		marker = lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("[x]")
		titleStyle = theme.DoneStyle
	}
	if selected {
		titleStyle = titleStyle.Bold(true).Foreground(theme.ColorBlue)
	}

	rows := []string{fmt.Sprintf("%s %s", marker, titleStyle.Render(ui.Truncate(title, width-4)))}
	for _, line := range ui.ClampLines(cp.Details, detailLines) {
		rows = append(rows, "    "+theme.HelpStyle.Render(ui.Truncate(line, width-4)))
	}

	style := theme.ListItemStyle
	if selected {
		style = theme.SelectedItemStyle
	}
	for i, r := range rows {
		rows[i] = style.Render(r)
	}
	return rows
}

// resize fits the viewport under the header and scrolls the selected row
// into view.
func (m *Model) resize() {
	header := m.renderHeader()
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-lipgloss.Height(header), 1)

	content, start, end := m.renderRows()
	m.viewport.SetContent(content)
	switch {
	case start < m.viewport.YOffset:
		m.viewport.SetYOffset(start)
	case end > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(end - m.viewport.Height)
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form.SetSize(width, height)
	if m.confirm != nil {
		m.confirm = m.confirm.WithWidth(ui.FormWidth(width)).WithHeight(ui.FormHeight(height))
	}
	m.resize()
}
