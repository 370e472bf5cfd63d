package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nhle/project-tracker/internal/theme"
)

// ErrorMsg reports a failed operation to the root model, which shows it in
// a dismissible alert.
type ErrorMsg struct {
	Err error
}

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return max(0, l.Height-l.HeaderHeight-l.StatusBarHeight)
}

// RenderHeader renders the top header bar with a title on the left and a
// status string on the right.
func (l Layout) RenderHeader(title, status string) string {
	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.Align(lipgloss.Right).Render(status)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, l.fill(theme.HeaderStyle, left, right), right)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, l.fill(theme.StatusBarStyle, rendered))
}

func (l Layout) fill(style lipgloss.Style, parts ...string) string {
	gap := l.Width
	for _, p := range parts {
		gap -= lipgloss.Width(p)
	}
	if gap <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(gap).Background(style.GetBackground()).Render("")
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar. The content is padded to the
// content height so the status bar stays at the bottom.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	if h := l.ContentHeight(); h > 0 {
		content = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// FormWidth clamps a huh form width to something readable.
func FormWidth(width int) int {
	return min(max(width-4, 40), 100)
}

// FormKeyMap is huh's default key map with esc aborting the form. ctrl+c
// stays with the root model, which quits the program.
func FormKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc"))
	return km
}

// FormHeight leaves room for the form title.
func FormHeight(height int) int {
	return max(height-4, 10)
}

// Truncate shortens s to at most width cells, ending in an ellipsis when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// ClampLines keeps the first n non-empty lines of s, trimmed. A trailing
// ellipsis marks dropped lines.
func ClampLines(s string, n int) []string {
	if n <= 0 {
		return nil
	}
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(out) == n {
			out[n-1] += " …"
			break
		}
		out = append(out, line)
	}
	return out
}
