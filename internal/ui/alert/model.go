// Package alert renders a dismissible error box over the current view.
package alert

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/model"
	"github.com/nhle/project-tracker/internal/theme"
)

// DismissedMsg is sent when the user closes the alert.
type DismissedMsg struct{}

var dismiss = key.NewBinding(key.WithKeys("enter", "esc", " "))

// Model shows one error until dismissed.
type Model struct {
	err   error
	loc   *i18n.Localizer
	width int
}

// New creates an alert for err.
func New(err error, loc *i18n.Localizer, width int) Model {
	return Model{err: err, loc: loc, width: width}
}

// Err returns the error being shown.
func (m Model) Err() error {
	return m.err
}

// Update emits DismissedMsg on enter, esc or space.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, dismiss) {
		return m, func() tea.Msg { return DismissedMsg{} }
	}
	return m, nil
}

// Message is the user-facing text for the error. Validation errors use the
// localized wording; anything else shows the wrapped error text.
func (m Model) Message() string {
	switch {
	case m.err == nil:
		return ""
	case errors.Is(m.err, model.ErrEmptyName):
		return m.loc.T("validation.name")
	case errors.Is(m.err, model.ErrEmptyTitle):
		return m.loc.T("validation.title")
	default:
		return m.err.Error()
	}
}

// View renders the alert box.
func (m Model) View() string {
	w := min(max(m.width-8, 30), 70)
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorRed).Render(m.loc.T("error.title"))
	body := lipgloss.NewStyle().Width(w - 6).Render(m.Message())
	hint := theme.HelpStyle.Render(m.loc.T("error.dismiss"))

	return theme.AlertStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", hint),
	)
}
