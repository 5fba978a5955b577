package vocab

import "math"

// Dot returns the dot product of two vectors. Both slices must have the
// same length; the store guarantees this for any two stored vectors.
func Dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Percent converts a dot product between unit vectors to the percent
// similarity scale used by constraints and display, without rounding.
func Percent(dot float32) float64 {
	return float64(dot) * 100
}

// RoundPercent converts a dot product to the percent scale rounded to two
// decimals, the precision every score is shown at. The candidate filter
// tolerance is half of this rounding step.
func RoundPercent(dot float32) float64 {
	return math.Round(float64(dot)*10000) / 100
}

// Normalize scales v to unit length in place and returns the original L2
// norm. Zero vectors are left unchanged and report a zero norm.
func Normalize(v []float32) float32 {
	var sq float64
	for _, x := range v {
		sq += float64(x) * float64(x)
	}
	if sq == 0 {
		return 0
	}
	norm := math.Sqrt(sq)
	inv := float32(1 / norm)
	for i := range v {
		v[i] *= inv
	}
	return float32(norm)
}
