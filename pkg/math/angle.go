package math

import "math"

// WrapAngle returns the signed shortest rotation from current to target,
// in the range [-Pi, Pi).
func WrapAngle(target, current float32) float32 {
	const twoPi = 2 * math.Pi
	d := math.Mod(math.Mod(float64(target-current), twoPi)+3*math.Pi, twoPi) - math.Pi
	return float32(d)
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpAngle moves current towards target along the shortest arc by factor t.
// The result is not wrapped, so callers can accumulate it.
func LerpAngle(current, target, t float32) float32 {
	return Lerp(current, current+WrapAngle(target, current), t)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
