// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/roi-estimator/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// FloorZero clamps negative values to zero.
func FloorZero(val float64) float64 {
	return Max(0, val)
}

// Clamp limits val to the closed interval [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// FromPercentage converts a percentage (e.g. 25) into a ratio (0.25).
func FromPercentage(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}

// ToPercentage converts a ratio (e.g. 0.25) into a percentage (25).
func ToPercentage(ratio float64) float64 {
	return ratio * constants.PercentageMultiplier
}
