// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// ClipSlice clips each value in values to interval in place
func ClipSlice(values []float64, interval r1.Interval) {
	for i := range values {
		values[i] = ClipInterval(values[i], interval)
	}
}

// Symmetric returns the interval [-bound, bound]
func Symmetric(bound float64) r1.Interval {
	return r1.Interval{Min: -bound, Max: bound}
}
