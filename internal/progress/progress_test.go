package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/project-tracker/internal/model"
)

func checkpoints(done ...bool) []model.Checkpoint {
	out := make([]model.Checkpoint, len(done))
	for i, d := range done {
		out[i] = model.Checkpoint{Title: "cp", Order: i, IsDone: d}
	}
	return out
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name      string
		in        []model.Checkpoint
		completed int
		total     int
		fraction  float64
		percent   int
		complete  bool
	}{
		{name: "nil", in: nil},
		{name: "empty", in: []model.Checkpoint{}},
		{name: "none done", in: checkpoints(false, false), total: 2},
		{name: "website 2 of 3", in: checkpoints(true, false, true), completed: 2, total: 3, fraction: 2.0 / 3.0, percent: 67},
		{name: "one of three", in: checkpoints(true, false, false), completed: 1, total: 3, fraction: 1.0 / 3.0, percent: 33},
		{name: "half", in: checkpoints(true, false), completed: 1, total: 2, fraction: 0.5, percent: 50},
		{name: "all done", in: checkpoints(true, true, true), completed: 3, total: 3, fraction: 1, percent: 100, complete: true},
		{name: "single done", in: checkpoints(true), completed: 1, total: 1, fraction: 1, percent: 100, complete: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.in)
			assert.Equal(t, tt.completed, got.Completed)
			assert.Equal(t, tt.total, got.Total)
			assert.InDelta(t, tt.fraction, got.Fraction, 1e-12)
			assert.Equal(t, tt.percent, got.Percent())
			assert.Equal(t, tt.complete, got.IsComplete())
		})
	}
}

func TestCompute_EmptyIsExactlyZero(t *testing.T) {
	got := Compute(nil)
	assert.Equal(t, 0.0, got.Fraction)
	assert.Equal(t, 0, got.Percent())
}

func TestCompute_FractionBounds(t *testing.T) {
	for total := 0; total <= 12; total++ {
		for done := 0; done <= total; done++ {
			flags := make([]bool, total)
			for i := 0; i < done; i++ {
				flags[i] = true
			}
			got := Compute(checkpoints(flags...))
			assert.GreaterOrEqual(t, got.Fraction, 0.0)
			assert.LessOrEqual(t, got.Fraction, 1.0)
			assert.GreaterOrEqual(t, got.Percent(), 0)
			assert.LessOrEqual(t, got.Percent(), 100)
		}
	}
}

func TestFromCounts_Clamps(t *testing.T) {
	assert.Equal(t, Summary{}, FromCounts(5, 0))
	assert.Equal(t, Summary{Completed: 2, Total: 2, Fraction: 1}, FromCounts(9, 2))
	assert.Equal(t, Summary{Completed: 0, Total: 4, Fraction: 0}, FromCounts(-1, 4))
}
