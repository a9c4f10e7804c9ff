package vmath

import (
	"math"
)

// Easing curves, t expected in [0, 1] and clamped

// Smoothstep is the cubic Hermite 3t²-2t³
func Smoothstep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// EaseInOutQuad accelerates through the first half and decelerates through the second
func EaseInOutQuad(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// EaseOutCubic decelerates toward 1
func EaseOutCubic(t float64) float64 {
	t = Clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}
