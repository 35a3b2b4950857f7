// Package algo holds the pure numerics used by the conversion stages:
// timestamp searches, linear interpolation, and quaternion blending.
package algo

import (
	"math"

	"github.com/motionforge/motionforge/schema"
)

// LowerIndex returns the index of the first timestamp >= t.
// Returns len(ts) when t is past the last timestamp.
func LowerIndex(ts []float64, t float64) int {
	lo, hi := 0, len(ts)
	for lo < hi {
		mid := (lo + hi) / 2
		if ts[mid] < t {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// UpperIndex returns the index of the last timestamp <= t.
// Returns -1 when t precedes the first timestamp.
func UpperIndex(ts []float64, t float64) int {
	return LowerIndex(ts, math.Nextafter(t, math.Inf(1))) - 1
}

// Bracket locates the pair of input frames surrounding time t and the
// blend factor between them. Timestamps must be strictly increasing and
// t must lie within [ts[0], ts[len-1]]; no extrapolation.
func Bracket(ts []float64, t float64) (i, j int, alpha float64) {
	n := len(ts)
	if t <= ts[0] {
		return 0, 0, 0
	}
	if t >= ts[n-1] {
		return n - 1, n - 1, 0
	}
	j = LowerIndex(ts, t)
	i = j - 1
	span := ts[j] - ts[i]
	return i, j, (t - ts[i]) / span
}

// Lerp blends two scalars.
func Lerp(a, b, alpha float64) float64 {
	return a + (b-a)*alpha
}

// LerpSlice blends two equal-length slices into a new slice.
func LerpSlice(a, b []float64, alpha float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = Lerp(a[i], b[i], alpha)
	}
	return out
}

// LerpVec3 blends two 3D vectors.
func LerpVec3(a, b schema.Vec3, alpha float64) schema.Vec3 {
	return schema.Vec3{
		Lerp(a[0], b[0], alpha),
		Lerp(a[1], b[1], alpha),
		Lerp(a[2], b[2], alpha),
	}
}

// AllFinite reports whether every value is finite.
func AllFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// SliceFinite reports whether every element of the slice is finite.
func SliceFinite(values []float64) bool {
	return AllFinite(values...)
}
