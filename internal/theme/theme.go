package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// AlertStyle frames error alerts.
var AlertStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorRed)

// DoneStyle renders completed checkpoint titles.
var DoneStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// Progress colour stops: red at 0, amber at 0.5, green at 1.
var (
	progressLow  = [3]float64{0.65, 0.22, 0.22}
	progressMid  = [3]float64{0.78, 0.68, 0.20}
	progressHigh = [3]float64{0.20, 0.65, 0.30}
)

// ProgressColor interpolates the red-amber-green scale for fraction in
// [0, 1]. Values outside the range are clamped.
func ProgressColor(fraction float64) lipgloss.Color {
	f := math.Max(0, math.Min(1, fraction))
	var rgb [3]float64
	if f < 0.5 {
		rgb = lerp(progressLow, progressMid, f/0.5)
	} else {
		rgb = lerp(progressMid, progressHigh, (f-0.5)/0.5)
	}
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X",
		channel(rgb[0]), channel(rgb[1]), channel(rgb[2])))
}

func lerp(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

func channel(v float64) int {
	return int(math.Round(v * 255))
}

// ProgressBar draws a width-cell bar filled to fraction.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	f := math.Max(0, math.Min(1, fraction))
	filled := int(math.Round(f * float64(width)))
	fill := lipgloss.NewStyle().Foreground(ProgressColor(f)).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(ColorSubtle).Render(strings.Repeat("░", width-filled))
	return fill + rest
}
