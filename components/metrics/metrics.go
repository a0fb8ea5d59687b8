// Package metrics computes display values derived from fixed datasets: shares of a
// total and bar widths relative to a maximum.
package metrics

import "math"

// PercentOfTotal returns value/total*100 rounded to one decimal place.
// A zero total yields 0.
func PercentOfTotal(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return Round(value/total*100, 1)
}

// RelativeScale returns value/max*100 clamped to [0,100]. A zero max yields 0.
// The result is not rounded; widths are rendered with whatever precision the caller needs.
func RelativeScale(value, max float64) float64 {
	if max == 0 {
		return 0
	}
	scale := value / max * 100
	switch {
	case scale < 0:
		return 0
	case scale > 100:
		return 100
	default:
		return scale
	}
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	if places < 0 {
		places = 0
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// Sum adds values.
func Sum(values ...float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Max returns the largest value, or 0 for an empty input.
func Max(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}
