package projectlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/keys"
	"github.com/nhle/project-tracker/internal/model"
	"github.com/nhle/project-tracker/internal/progress"
	"github.com/nhle/project-tracker/internal/store"
	"github.com/nhle/project-tracker/internal/theme"
	"github.com/nhle/project-tracker/internal/ui"
)

// LoadedMsg carries freshly loaded project rows.
type LoadedMsg struct {
	Rows []Row
}

// OpenMsg asks the parent to open a project's detail view.
type OpenMsg struct {
	ProjectID string
}

// SaveMsg asks the parent to create (empty ID) or rename a project.
type SaveMsg struct {
	ID   string
	Name string
}

// DeleteMsg asks the parent to delete a project and its checkpoints.
type DeleteMsg struct {
	ProjectID string
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
)

type formBindings struct {
	name    string
	confirm bool
}

// Model is the project list view.
type Model struct {
	mode      mode
	list      list.Model
	store     store.Store
	keys      *keys.KeyMap
	loc       *i18n.Localizer
	form      *huh.Form
	fb        *formBindings
	editingID string
	target    model.Project
	width     int
	height    int
}

// New creates a project list over s.
func New(s store.Store, k *keys.KeyMap, loc *i18n.Localizer, width, height int) Model {
	l := list.New([]list.Item{}, Delegate{loc: loc}, width, height)
	l.Title = loc.T("projects.title")
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		store:  s,
		keys:   k,
		loc:    loc,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Init loads the projects.
func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload returns a command that reads every project and its progress.
func (m Model) Reload() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		rows, err := loadRows(context.Background(), s)
		if err != nil {
			return ui.ErrorMsg{Err: err}
		}
		return LoadedMsg{Rows: rows}
	}
}

func loadRows(ctx context.Context, s store.Store) ([]Row, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(projects))
	for _, p := range projects {
		cps, err := s.ListCheckpoints(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Project: p, Summary: progress.Compute(cps)})
	}
	return rows, nil
}

// Rows returns the rows currently shown.
func (m Model) Rows() []Row {
	items := m.list.Items()
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		if r, ok := it.(Row); ok {
			rows = append(rows, r)
		}
	}
	return rows
}

// Capturing reports whether a form owns the keyboard.
func (m Model) Capturing() bool {
	return m.mode != modeList
}

// StartCreate opens the new-project form.
func (m *Model) StartCreate() tea.Cmd {
	m.editingID = ""
	m.fb.name = ""
	m.form = m.buildForm(m.loc.T("project.new"))
	m.mode = modeForm
	return m.form.Init()
}

// Update handles messages for the project list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		items := make([]list.Item, len(msg.Rows))
		for i, r := range msg.Rows {
			items[i] = r
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		}
		return m.handleListKey(msg)
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) selected() (Row, bool) {
	r, ok := m.list.SelectedItem().(Row)
	return r, ok
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return OpenMsg{ProjectID: r.Project.ID} }

	case key.Matches(msg, m.keys.New):
		return m, m.StartCreate()

	case key.Matches(msg, m.keys.Edit):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.editingID = r.Project.ID
		m.fb.name = r.Project.Name
		m.form = m.buildForm(m.loc.T("project.edit"))
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Delete):
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.target = r.Project
		m.fb.confirm = false
		m.form = m.buildConfirmForm()
		m.mode = modeConfirmDelete
		return m, m.form.Init()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) buildForm(title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(m.loc.T("project.name")).
				Placeholder(m.loc.T("project.name.placeholder")).
				Value(&m.fb.name).
				Validate(func(s string) error {
					if model.ValidateName(s) != nil {
						return errors.New(m.loc.T("validation.name"))
					}
					return nil
				}),
		).Title(title),
	).
		WithKeyMap(ui.FormKeyMap()).
		WithWidth(ui.FormWidth(m.width)).
		WithHeight(ui.FormHeight(m.height))
}

func (m Model) buildConfirmForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(m.loc.T("project.delete.title", m.target.Name)).
				Description(m.loc.T("project.delete.message")).
				Affirmative(m.loc.T("action.delete")).
				Negative(m.loc.T("action.cancel")).
				Value(&m.fb.confirm),
		),
	).
		WithKeyMap(ui.FormKeyMap()).
		WithWidth(ui.FormWidth(m.width)).
		WithHeight(ui.FormHeight(m.height))
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		out := SaveMsg{ID: m.editingID, Name: model.CleanText(m.fb.name)}
		m.mode = modeList
		m.form = nil
		return m, func() tea.Msg { return out }
	case huh.StateAborted:
		m.mode = modeList
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.mode = modeList
		m.form = nil
		if !m.fb.confirm {
			return m, nil
		}
		id := m.target.ID
		return m, func() tea.Msg { return DeleteMsg{ProjectID: id} }
	case huh.StateAborted:
		m.mode = modeList
		m.form = nil
		return m, nil
	}
	return m, cmd
}

// View renders the project list, the active form or the empty state.
func (m Model) View() string {
	if m.mode != modeList && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(fmt.Sprintf("%s\n\n%s", m.loc.T("projects.title"), m.loc.T("projects.empty")))
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
	if m.form != nil {
		m.form = m.form.WithWidth(ui.FormWidth(width)).WithHeight(ui.FormHeight(height))
	}
}
