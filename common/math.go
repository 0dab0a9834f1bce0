package common

import "math"

// https://stackoverflow.com/questions/18390266/how-can-we-truncate-float64-type-to-a-particular-precision
func Round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

func DecimalToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(Round(num*output)) / output
}

// Sign returns -1, 0, or +1 for negative, zero, and positive values.
func Sign(num float64) int {
	if num > 0 {
		return 1
	}
	if num < 0 {
		return -1
	}
	return 0
}

// Float64 returns a pointer to v.
// Nil float pointers are how "not computable" values travel through the pipeline.
func Float64(v float64) *float64 {
	return &v
}

// Float64Or dereferences v, or returns def when v is nil.
func Float64Or(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// KmhOf returns the speed in km/h covering km over sec seconds,
// or nil if no time elapsed.
func KmhOf(km float64, sec int64) *float64 {
	if sec == 0 {
		return nil
	}
	return Float64(km / (float64(sec) / 3600))
}
