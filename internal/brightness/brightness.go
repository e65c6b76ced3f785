package brightness

import "math"

// Color is one RGB bulb value. Channels are 8-bit, matching what goes
// out on the wire to the strips.
type Color struct {
	R, G, B uint8
}

// Black is the off color.
var Black = Color{}

// Tables are built once at startup and hold brightness steps for a
// pattern. Given a target color (R, G, B), a step scales each channel
// by a factor x(t) in [0, 1] with t = (i+1)/n for step i. Components
// are integers, so any fractional part is dropped, not rounded.

// Linear returns n steps of seed scaled by x(t) = t.
func Linear(seed Color, n int) []Color {
	out := make([]Color, n)
	for i := 0; i < n; i++ {
		t := float64(i+1) / float64(n)
		out[i] = scale(seed, t)
	}
	return out
}

// Quadratic returns n steps of seed scaled by x(t) = t*t.
func Quadratic(seed Color, n int) []Color {
	out := make([]Color, n)
	for i := 0; i < n; i++ {
		t := float64(i+1) / float64(n)
		out[i] = scale(seed, t*t)
	}
	return out
}

// MinMax returns n quadratic steps between two colors: per channel
// min + (max-min)*t*t.
func MinMax(min, max Color, n int) []Color {
	out := make([]Color, n)
	for i := 0; i < n; i++ {
		t := float64(i+1) / float64(n)
		tsq := t * t
		out[i] = Color{
			R: clamp8(float64(min.R) + (float64(max.R)-float64(min.R))*tsq),
			G: clamp8(float64(min.G) + (float64(max.G)-float64(min.G))*tsq),
			B: clamp8(float64(min.B) + (float64(max.B)-float64(min.B))*tsq),
		}
	}
	return out
}

// Exponential returns n steps where each channel independently follows
// 2^(log2(ch)*t), so every channel climbs toward its own maximum as
// the exponential ceiling. A zero channel stays zero.
func Exponential(seed Color, n int) []Color {
	maxER := math.Log2(float64(seed.R))
	maxEG := math.Log2(float64(seed.G))
	maxEB := math.Log2(float64(seed.B))
	out := make([]Color, n)
	for i := 0; i < n; i++ {
		t := float64(i+1) / float64(n)
		out[i] = Color{
			R: clamp8(math.Pow(2, maxER*t)),
			G: clamp8(math.Pow(2, maxEG*t)),
			B: clamp8(math.Pow(2, maxEB*t)),
		}
	}
	return out
}

func scale(c Color, x float64) Color {
	return Color{
		R: clamp8(float64(c.R) * x),
		G: clamp8(float64(c.G) * x),
		B: clamp8(float64(c.B) * x),
	}
}

// clamp8 truncates v to an integer channel value in [0, 255].
func clamp8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
