package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/keys"
	"github.com/nhle/project-tracker/internal/store"
	"github.com/nhle/project-tracker/internal/ui"
	"github.com/nhle/project-tracker/internal/ui/alert"
	"github.com/nhle/project-tracker/internal/ui/checkpointform"
	"github.com/nhle/project-tracker/internal/ui/command"
	"github.com/nhle/project-tracker/internal/ui/detail"
	helpview "github.com/nhle/project-tracker/internal/ui/help"
	"github.com/nhle/project-tracker/internal/ui/projectlist"
	"github.com/nhle/project-tracker/internal/watch"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewProjects ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model that manages view routing, layout,
// store writes and error alerts.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        store.Store
	watcher      *watch.Watcher
	keys         *keys.KeyMap
	loc          *i18n.Localizer
	logger       *zap.Logger
	projects     projectlist.Model
	detail       detail.Model
	detailOpen   bool
	helpView     helpview.Model
	commandView  command.Model
	alert        *alert.Model
	status       string
	ready        bool
}

// New creates the root model over s.
func New(s store.Store, loc *i18n.Localizer, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap(loc)
	return Model{
		currentView: ViewProjects,
		store:       s,
		watcher:     watch.New(s),
		keys:        k,
		loc:         loc,
		logger:      logger.Named("app"),
		projects:    projectlist.New(s, k, loc, 80, 22),
		helpView:    helpview.New(k, loc, 80, 22),
		commandView: command.New(loc, 80, 22),
		layout:      ui.NewLayout(80, 24),
	}
}

// Init loads the project list and starts watching the store.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.projects.Init(), m.watcher.Start())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.projects.SetSize(w, h)
		if m.detailOpen {
			m.detail.SetSize(w, h)
		}
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		return m.updateActiveView(msg)

	case watch.ChangeMsg:
		cmds := []tea.Cmd{m.watcher.Next(), m.projects.Reload()}
		if m.detailOpen && msg.TouchesProject(m.detail.ProjectID()) {
			cmds = append(cmds, m.detail.Reload())
		}
		return m, tea.Batch(cmds...)

	case ui.ErrorMsg:
		m.logger.Warn("operation failed", zap.Error(msg.Err))
		a := alert.New(msg.Err, m.loc, m.layout.Width)
		m.alert = &a
		return m, nil

	case alert.DismissedMsg:
		m.alert = nil
		return m, nil

	case storeResultMsg:
		if msg.err != nil {
			return m.Update(ui.ErrorMsg{Err: msg.err})
		}
		m.status = m.loc.T(msg.statusKey)
		return m, nil

	case projectlist.LoadedMsg:
		var cmd tea.Cmd
		m.projects, cmd = m.projects.Update(msg)
		return m, cmd

	case detail.LoadedMsg:
		if !m.detailOpen {
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case projectlist.OpenMsg:
		m.detail = detail.New(m.store, m.keys, m.loc, msg.ProjectID,
			m.layout.ContentWidth(), m.layout.ContentHeight())
		m.detailOpen = true
		m.currentView = ViewDetail
		return m, m.detail.Init()

	case detail.BackMsg:
		m.detailOpen = false
		if m.currentView == ViewDetail {
			m.currentView = ViewProjects
		}
		if m.previousView == ViewDetail {
			m.previousView = ViewProjects
		}
		return m, nil

	case projectlist.SaveMsg:
		return m, m.saveProject(msg)

	case projectlist.DeleteMsg:
		return m, m.deleteProject(msg.ProjectID)

	case detail.ToggleMsg:
		return m, m.toggleCheckpoint(msg.CheckpointID)

	case detail.DeleteMsg:
		return m, m.deleteCheckpoint(msg.CheckpointID)

	case checkpointform.SubmittedMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, tea.Batch(cmd, m.saveCheckpoint(msg))

	case checkpointform.CancelledMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case command.CommandMsg:
		m.currentView = m.previousView
		m.commandView.Blur()
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.alert != nil {
			a, cmd := m.alert.Update(msg)
			m.alert = &a
			return m, cmd
		}
		if next, cmd, ok := m.handleGlobalKey(msg); ok {
			return next, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across views. The bool is false
// when the key should go to the active view instead.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch m.currentView {
	case ViewCommand:
		if key.Matches(msg, m.keys.Back, m.keys.Command) {
			m.currentView = m.previousView
			m.commandView.Blur()
			return m, nil, true
		}
		return m, nil, false
	case ViewHelp:
		if key.Matches(msg, m.keys.Back, m.keys.Help) {
			m.currentView = m.previousView
			return m, nil, true
		}
	}

	if m.capturing() {
		return m, nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit) && m.currentView == ViewProjects:
		mdl, cmd := m.quit()
		return mdl, cmd, true

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true
	}
	return m, nil, false
}

// capturing reports whether the active view has a form open.
func (m Model) capturing() bool {
	switch m.currentView {
	case ViewProjects:
		return m.projects.Capturing()
	case ViewDetail:
		return m.detail.Capturing()
	}
	return false
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.watcher.Stop()
	return m, tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewProjects:
		m.projects, cmd = m.projects.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case command.NewProject:
		m.detailOpen = false
		m.currentView = ViewProjects
		return m.projects.StartCreate()
	case command.Projects:
		m.detailOpen = false
		m.currentView = ViewProjects
		return m.projects.Reload()
	case command.Help:
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil
	case command.Quit:
		m.watcher.Stop()
		return tea.Quit
	default:
		m.status = m.loc.T("command.unknown", cmd)
		return nil
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	header := m.layout.RenderHeader(m.loc.T("app.title"), m.status)
	content := m.renderContent()
	if m.alert != nil {
		content = lipgloss.Place(m.layout.ContentWidth(), m.layout.ContentHeight(),
			lipgloss.Center, lipgloss.Center, m.alert.View())
	}
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewProjects:
		return m.projects.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.alert != nil {
		return m.loc.T("hints.alert")
	}
	if m.capturing() {
		return m.loc.T("hints.form")
	}

	switch m.currentView {
	case ViewHelp:
		return m.loc.T("hints.help")
	case ViewCommand:
		return m.loc.T("hints.command")
	case ViewDetail:
		return m.loc.T("hints.detail")
	default:
		return m.loc.T("hints.projects")
	}
}
