package transform

import "math"

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func round4(value float64) float64 {
	return math.Round(value*10000) / 10000
}

// safeDiv divides with a guarded denominator: zero in, zero out. The
// transforms never emit NaN or Inf.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// percentOf returns part/total as a percentage rounded to 2 decimals,
// or 0 when total is not positive.
func percentOf(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return round2(part / total * 100)
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
