package checkpointform

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/model"
	"github.com/nhle/project-tracker/internal/theme"
	"github.com/nhle/project-tracker/internal/ui"
)

// SubmittedMsg is dispatched when the form completes. An empty ID means a
// new checkpoint for ProjectID.
type SubmittedMsg struct {
	ID        string
	ProjectID string
	Title     string
	Details   string
}

// CancelledMsg is dispatched when the user aborts the form.
type CancelledMsg struct{}

// formBindings holds field values on the heap so huh's Value() pointers
// stay valid across Bubble Tea model copies.
type formBindings struct {
	title   string
	details string
}

// Model is the create/edit form for one checkpoint.
type Model struct {
	form      *huh.Form
	fb        *formBindings
	loc       *i18n.Localizer
	editID    string
	projectID string
	width     int
	height    int
}

// New creates an idle form.
func New(loc *i18n.Localizer, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		loc:    loc,
		width:  width,
		height: height,
	}
}

// StartCreate opens an empty form for a new checkpoint in projectID.
func (m *Model) StartCreate(projectID string) tea.Cmd {
	m.editID = ""
	m.projectID = projectID
	m.fb.title = ""
	m.fb.details = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit opens the form prefilled with cp.
func (m *Model) StartEdit(cp model.Checkpoint) tea.Cmd {
	m.editID = cp.ID
	m.projectID = cp.ProjectID
	m.fb.title = cp.Title
	m.fb.details = cp.Details
	m.form = m.buildForm()
	return m.form.Init()
}

// Editing reports whether the form edits an existing checkpoint.
func (m Model) Editing() bool {
	return m.editID != ""
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		out := SubmittedMsg{
			ID:        m.editID,
			ProjectID: m.projectID,
			Title:     model.CleanText(m.fb.title),
			Details:   model.CleanText(m.fb.details),
		}
		m.form = nil
		return m, func() tea.Msg { return out }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelledMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	heading := m.loc.T("checkpoint.new")
	if m.Editing() {
		heading = m.loc.T("checkpoint.edit")
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(heading)

	return lipgloss.NewStyle().Padding(1, 2).Render(title + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(ui.FormWidth(width)).WithHeight(ui.FormHeight(height))
	}
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(m.loc.T("checkpoint.title")).
				Placeholder(m.loc.T("checkpoint.title.placeholder")).
				Value(&m.fb.title).
				Validate(m.validateTitle),
			huh.NewText().
				Title(m.loc.T("checkpoint.details")).
				Placeholder(m.loc.T("checkpoint.details.placeholder")).
				Value(&m.fb.details),
		),
	).
		WithKeyMap(ui.FormKeyMap()).
		WithWidth(ui.FormWidth(m.width)).
		WithHeight(ui.FormHeight(m.height))
}

func (m *Model) validateTitle(s string) error {
	if err := model.ValidateTitle(s); err != nil {
		return errors.New(m.loc.T("validation.title"))
	}
	return nil
}
