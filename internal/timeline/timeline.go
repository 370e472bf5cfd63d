// Package timeline lays out a project's checkpoints along a linear track:
// one tick per checkpoint, a fill proportional to completion, and a label
// box under every tick. It is pure arithmetic; drawing is left to the caller.
package timeline

import "math"

// Options tunes label sizing. Widths and padding share the unit of the
// track width passed to Compute (points, cells, ...).
type Options struct {
	// LabelFill is the share of a tick's segment a label may occupy.
	LabelFill       float64
	MinLabelWidth   float64
	MaxLabelWidth   float64
	EmptyLabelWidth float64
	// EdgePadding keeps label centres this far from either end of the track.
	EdgePadding float64
}

// DefaultOptions returns label metrics for a point-based canvas.
func DefaultOptions() Options {
	return Options{
		LabelFill:       0.9,
		MinLabelWidth:   60,
		MaxLabelWidth:   140,
		EmptyLabelWidth: 80,
		EdgePadding:     30,
	}
}

// TerminalOptions returns label metrics measured in terminal cells.
func TerminalOptions() Options {
	return Options{
		LabelFill:       0.9,
		MinLabelWidth:   6,
		MaxLabelWidth:   14,
		EmptyLabelWidth: 8,
		EdgePadding:     3,
	}
}

// Tick is one checkpoint position on the track.
type Tick struct {
	// Index is 1-based.
	Index int
	// Offset is Index/total, so the last tick sits at the end of the track.
	Offset float64
	X      float64
	// Reached is true for the first `completed` ticks.
	Reached bool
	Title   string
	// LabelX is the label centre, clamped away from the track edges.
	LabelX float64
}

// Layout is the computed geometry of one timeline.
type Layout struct {
	Width float64
	// Progress is completed/total (0 for an empty track).
	Progress float64
	// Fill equals Progress, except that full completion is exactly 1 so the
	// fill always reaches the final tick.
	Fill       float64
	LabelWidth float64
	Ticks      []Tick
}

// Compute lays out total ticks over a track of the given width. titles[i]
// labels tick i+1; missing titles are empty.
func Compute(total, completed int, titles []string, width float64, opts Options) Layout {
	if width < 0 {
		width = 0
	}
	l := Layout{
		Width:      width,
		LabelWidth: LabelWidth(total, width, opts),
	}
	if total <= 0 {
		return l
	}

	if completed < 0 {
		completed = 0
	}
	l.Progress = math.Min(float64(completed)/float64(total), 1)
	l.Fill = l.Progress
	if completed >= total {
		l.Fill = 1
	}

	l.Ticks = make([]Tick, total)
	for i := 1; i <= total; i++ {
		offset := float64(i) / float64(total)
		x := width * offset
		title := ""
		if i-1 < len(titles) {
			title = titles[i-1]
		}
		l.Ticks[i-1] = Tick{
			Index:   i,
			Offset:  offset,
			X:       x,
			Reached: i <= completed,
			Title:   title,
			LabelX:  clampLabelX(x, width, opts.EdgePadding),
		}
	}
	return l
}

// LabelWidth returns the label box width: the per-tick segment scaled by
// LabelFill and clamped to [MinLabelWidth, MaxLabelWidth].
func LabelWidth(total int, width float64, opts Options) float64 {
	if total <= 0 {
		return opts.EmptyLabelWidth
	}
	ideal := width / float64(total) * opts.LabelFill
	return math.Min(math.Max(ideal, opts.MinLabelWidth), opts.MaxLabelWidth)
}

func clampLabelX(x, width, padding float64) float64 {
	if width-padding < padding {
		return width / 2
	}
	return math.Min(math.Max(x, padding), width-padding)
}

// CellLayout maps a Layout onto a row of terminal cells.
type CellLayout struct {
	Filled int
	// TickCols holds the column of every tick, in tick order.
	TickCols []int
	// LabelStarts holds the first column of every label box.
	LabelStarts []int
	LabelWidth  int
}

// Cells converts a layout onto cols columns. A tick is drawn in the last cell
// of its segment, so the final tick lands on column cols-1 instead of past
// the end of the track.
func Cells(l Layout, cols int) CellLayout {
	c := CellLayout{}
	if cols <= 0 {
		return c
	}

	c.Filled = int(math.Round(l.Fill * float64(cols)))
	if l.Fill >= 1 {
		c.Filled = cols
	}
	c.Filled = clampInt(c.Filled, 0, cols)

	c.LabelWidth = clampInt(int(math.Floor(l.LabelWidth)), 1, cols)

	c.TickCols = make([]int, len(l.Ticks))
	c.LabelStarts = make([]int, len(l.Ticks))
	for i, t := range l.Ticks {
		col := int(math.Ceil(t.Offset*float64(cols)-1e-9)) - 1
		c.TickCols[i] = clampInt(col, 0, cols-1)

		start := int(math.Round(t.LabelX*float64(cols)/nonZero(l.Width) - float64(c.LabelWidth)/2))
		c.LabelStarts[i] = clampInt(start, 0, cols-c.LabelWidth)
	}
	return c
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
