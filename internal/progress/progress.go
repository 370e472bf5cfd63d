// Package progress derives completion metrics from a project's checkpoints.
// Nothing is cached: callers recompute from the current rows on every read.
package progress

import (
	"math"

	"github.com/nhle/project-tracker/internal/model"
)

// Summary is the completion state of a checkpoint collection.
type Summary struct {
	Completed int
	Total     int
	// Fraction is Completed/Total, or 0 when Total is 0. Always within [0, 1].
	Fraction float64
}

// Compute counts completed checkpoints. An empty collection yields the zero Summary.
func Compute(checkpoints []model.Checkpoint) Summary {
	completed := 0
	for _, cp := range checkpoints {
		if cp.IsDone {
			completed++
		}
	}
	return FromCounts(completed, len(checkpoints))
}

// FromCounts builds a Summary from raw counts, clamping completed into [0, total].
func FromCounts(completed, total int) Summary {
	if total <= 0 {
		return Summary{}
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	return Summary{
		Completed: completed,
		Total:     total,
		Fraction:  float64(completed) / float64(total),
	}
}

// Percent returns the fraction as a whole percentage, rounded to nearest.
func (s Summary) Percent() int {
	return int(math.Round(s.Fraction * 100))
}

// IsComplete reports whether every checkpoint is done. An empty project is not complete.
func (s Summary) IsComplete() bool {
	return s.Total > 0 && s.Completed == s.Total
}
