package detail

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nhle/project-tracker/internal/theme"
	"github.com/nhle/project-tracker/internal/timeline"
	"github.com/nhle/project-tracker/internal/ui"
)

const (
	tickReached = "●"
	tickPending = "○"
	trackFilled = "━"
	trackEmpty  = "─"
)

// renderTimeline draws the label row above the track row, cols cells wide.
func renderTimeline(l timeline.Layout, cols int) string {
	if cols <= 0 {
		return ""
	}
	cells := timeline.Cells(l, cols)
	return renderLabels(l, cells, cols) + "\n" + renderTrack(l, cells, cols)
}

// renderLabels places each title in its label box. A label that would
// overlap the previous one is shifted right, and dropped if it no longer
// fits.
func renderLabels(l timeline.Layout, c timeline.CellLayout, cols int) string {
	var b strings.Builder
	cursor := 0
	for i, t := range l.Ticks {
		label := ui.Truncate(strings.TrimSpace(t.Title), c.LabelWidth)
		w := runewidth.StringWidth(label)
		if w == 0 {
			continue
		}
		start := c.LabelStarts[i] + (c.LabelWidth-w)/2
		start = max(start, cursor)
		if start+w > cols {
			continue
		}
		b.WriteString(strings.Repeat(" ", start-cursor))
		style := lipgloss.NewStyle().Foreground(theme.ColorGray)
		if t.Reached {
			style = style.Foreground(theme.ColorWhite)
		}
		b.WriteString(style.Render(label))
		cursor = start + w
		if cursor < cols {
			b.WriteString(" ")
			cursor++
		}
	}
	return b.String()
}

func renderTrack(l timeline.Layout, c timeline.CellLayout, cols int) string {
	ticks := make(map[int]bool, len(c.TickCols))
	for i, col := range c.TickCols {
		ticks[col] = l.Ticks[i].Reached
	}

	fill := lipgloss.NewStyle().Foreground(theme.ProgressColor(l.Fill))
	empty := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	pending := lipgloss.NewStyle().Foreground(theme.ColorGray)

	var b strings.Builder
	for col := 0; col < cols; col++ {
		reached, isTick := ticks[col]
		switch {
		case isTick && reached:
			b.WriteString(fill.Render(tickReached))
		case isTick:
			b.WriteString(pending.Render(tickPending))
		case col < c.Filled:
			b.WriteString(fill.Render(trackFilled))
		default:
			b.WriteString(empty.Render(trackEmpty))
		}
	}
	return b.String()
}
