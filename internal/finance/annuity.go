// Package finance holds the discounting helpers shared by the calculators.
package finance

import "math"

// HoursPerYear is used to turn capacity factors into yearly energy.
const HoursPerYear = 8760

// PVFactor is the present value of 1 paid at the end of each of n years at
// discount rate r: (1 - (1+r)^-n) / r. With r == 0 it degenerates to n.
func PVFactor(r float64, n int) float64 {
	if r == 0 {
		return float64(n)
	}
	return (1 - math.Pow(1+r, -float64(n))) / r
}

// CRF is the capital recovery factor r(1+r)^n / ((1+r)^n - 1), the inverse
// of PVFactor. It converts a one-time cost into equal yearly payments.
func CRF(r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if r == 0 {
		return 1 / float64(n)
	}
	g := math.Pow(1+r, float64(n))
	return r * g / (g - 1)
}

// Payback returns capex / annual, or 0 when the project never pays back.
func Payback(capex, annual float64) float64 {
	if annual <= 0 {
		return 0
	}
	return capex / annual
}
