package systems

import "math"

const twoPi = 2 * math.Pi

// Clamp functions for common value ranges

// clamp clamps a float64 value between min and max.
func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float64 value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Interpolation

// lerp blends a toward b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerp32 is lerp for float32 positions with a float64 factor.
func lerp32(a, b float32, t float64) float32 {
	return a + (b-a)*float32(t)
}

// mapRange linearly maps v from [inMin, inMax] onto [outMin, outMax]
// without clamping. A degenerate input range maps everything to outMin.
func mapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// mod returns positive modulo (Go's math.Mod can return negative).
func mod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

// randRange returns a uniform value in [lo, hi).
func randRange(r interface{ Float64() float64 }, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
