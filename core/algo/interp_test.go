package algo

import (
	"math"
	"testing"

	"github.com/motionforge/motionforge/schema"
	"github.com/stretchr/testify/assert"
)

// TestLowerUpperIndex covers boundary behavior of the timestamp searches.
func TestLowerUpperIndex(t *testing.T) {
	ts := []float64{0, 0.1, 0.2, 0.3, 0.4}

	tests := []struct {
		name      string
		t         float64
		wantLower int
		wantUpper int
	}{
		{name: "before first", t: -0.5, wantLower: 0, wantUpper: -1},
		{name: "exactly first", t: 0, wantLower: 0, wantUpper: 0},
		{name: "between samples", t: 0.25, wantLower: 3, wantUpper: 2},
		{name: "exactly on sample", t: 0.2, wantLower: 2, wantUpper: 2},
		{name: "exactly last", t: 0.4, wantLower: 4, wantUpper: 4},
		{name: "past last", t: 1.0, wantLower: 5, wantUpper: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLower, LowerIndex(ts, tt.t))
			assert.Equal(t, tt.wantUpper, UpperIndex(ts, tt.t))
		})
	}
}

// TestBracket verifies bracketing pairs and blend factors.
func TestBracket(t *testing.T) {
	ts := []float64{0, 0.5, 1.0}

	tests := []struct {
		name      string
		t         float64
		wantI     int
		wantJ     int
		wantAlpha float64
	}{
		{name: "at start", t: 0, wantI: 0, wantJ: 0, wantAlpha: 0},
		{name: "quarter", t: 0.25, wantI: 0, wantJ: 1, wantAlpha: 0.5},
		{name: "on interior sample", t: 0.5, wantI: 0, wantJ: 1, wantAlpha: 1},
		{name: "at end", t: 1.0, wantI: 2, wantJ: 2, wantAlpha: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, j, alpha := Bracket(ts, tt.t)
			assert.Equal(t, tt.wantI, i)
			assert.Equal(t, tt.wantJ, j)
			assert.InDelta(t, tt.wantAlpha, alpha, 1e-12)
		})
	}
}

// TestLerpSlice checks elementwise blending.
func TestLerpSlice(t *testing.T) {
	a := []float64{0, 10, -4}
	b := []float64{1, 20, 4}

	out := LerpSlice(a, b, 0.5)
	assert.Equal(t, []float64{0.5, 15, 0}, out)

	// Inputs untouched.
	assert.Equal(t, []float64{0, 10, -4}, a)
}

// TestLerpVec3 checks vector blending.
func TestLerpVec3(t *testing.T) {
	a := schema.Vec3{0, 0, 0}
	b := schema.Vec3{1, 2, 3}
	assert.Equal(t, schema.Vec3{0.25, 0.5, 0.75}, LerpVec3(a, b, 0.25))
}

// TestAllFinite covers NaN and infinity detection.
func TestAllFinite(t *testing.T) {
	assert.True(t, AllFinite(0, -1.5, 1e300))
	assert.False(t, AllFinite(0, math.NaN()))
	assert.False(t, AllFinite(math.Inf(1)))
	assert.True(t, SliceFinite([]float64{1, 2, 3}))
	assert.False(t, SliceFinite([]float64{1, math.Inf(-1)}))
}
