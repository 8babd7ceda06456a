package chart

import "math"

// Rate converts raw counts into a conversion percentage. A variant with no
// traffic has a defined rate of zero rather than an undefined one. The result
// is rounded to two decimals and is never NaN or infinite; degenerate inputs
// collapse to zero. Rates above 100 are legal (conversions can exceed visits
// when a visitor converts more than once).
func Rate(conversions, visits float64) float64 {
	if visits == 0 {
		return 0
	}
	return round2(safe(conversions / visits * 100))
}

// safe coerces NaN and ±Inf to zero. Applied at every arithmetic boundary
// (division, mean) so degenerate values never reach a consumer.
func safe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
