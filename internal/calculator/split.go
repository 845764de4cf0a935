package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// SplitPerPerson divides total evenly across people, rounded to cents.
// Returns 0 when people is not positive.
func SplitPerPerson(total float64, people int) float64 {
	if people <= 0 {
		return 0
	}
	return RoundCents(total / float64(people))
}

// RoundCents rounds v to two decimals. The value is scaled by 100 first and
// the scaled value is rounded half away from zero, so 1.005 (stored as
// 100.49999... cents) rounds down to 1.00.
func RoundCents(v float64) float64 {
	if !scalable(v) {
		return v
	}
	return cents(v).InexactFloat64()
}

// scalable reports whether v can be scaled to cents without overflowing.
func scalable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v*100, 0)
}

// cents is v rounded to two decimals as a decimal.Decimal. v must be
// scalable.
func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v * 100).Round(0).Shift(-2)
}
