package projectlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/model"
	"github.com/nhle/project-tracker/internal/progress"
	"github.com/nhle/project-tracker/internal/theme"
	"github.com/nhle/project-tracker/internal/ui"
)

// Row is one project with its computed progress.
type Row struct {
	Project model.Project
	Summary progress.Summary
}

// FilterValue returns the string used for fuzzy filtering.
func (r Row) FilterValue() string { return r.Project.Name }

// Delegate implements list.ItemDelegate for project rows.
type Delegate struct {
	loc *i18n.Localizer
}

// Height returns the number of lines each row takes.
func (d Delegate) Height() int { return 2 }

// Spacing returns the number of blank lines between rows.
func (d Delegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d Delegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

// Render draws a single project row.
func (d Delegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(Row)
	if !ok {
		return
	}
	fmt.Fprint(w, renderRow(row, m.Width(), index == m.Index(), d.loc))
}

// renderRow lays out the name and percent on the first line and the
// progress bar with the completed count on the second.
func renderRow(r Row, width int, selected bool, loc *i18n.Localizer) string {
	inner := max(width-2, 20)

	name := r.Project.Name
	if strings.TrimSpace(name) == "" {
		name = loc.T("projects.unnamed")
	}
	pct := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ProgressColor(r.Summary.Fraction)).
		Render(loc.T("progress.percent", r.Summary.Percent()))
	name = ui.Truncate(name, inner-lipgloss.Width(pct)-1)
	gap := max(inner-lipgloss.Width(name)-lipgloss.Width(pct), 1)

	nameStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(theme.ColorBlue)
	}
	first := nameStyle.Render(name) + strings.Repeat(" ", gap) + pct

	counts := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(loc.T("progress.completed", r.Summary.Completed, r.Summary.Total))
	barWidth := min(max(inner-lipgloss.Width(counts)-2, 10), 40)
	second := theme.ProgressBar(r.Summary.Fraction, barWidth) + "  " + counts

	block := first + "\n" + second
	if selected {
		return theme.SelectedItemStyle.Render(block)
	}
	return theme.ListItemStyle.Render(block)
}
