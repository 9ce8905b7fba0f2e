package task

import "math"

// Epsilon is the floating-point tolerance used throughout the
// scheduling engine for hour comparisons (spec 4.5.4, 8).
const Epsilon = 1e-5

// AlmostEqual reports whether a and b differ by less than Epsilon.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// GreaterOrEqual reports whether a >= b within Epsilon tolerance.
func GreaterOrEqual(a, b float64) bool {
	return a > b || AlmostEqual(a, b)
}

// LessOrEqual reports whether a <= b within Epsilon tolerance.
func LessOrEqual(a, b float64) bool {
	return a < b || AlmostEqual(a, b)
}

// SumAllocations sums a DailyAllocations-shaped map.
func SumAllocations(m map[string]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}
