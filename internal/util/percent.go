package util

import (
	"math"

	"github.com/shopspring/decimal"
)

// RequiredRecoveryPct is the gain needed to get back to a peak after
// losing lossPct percent of it.
func RequiredRecoveryPct(lossPct float64) float64 {
	if lossPct <= 0 {
		return 0
	}
	if lossPct >= 100 {
		return math.Inf(1)
	}
	return (lossPct / (100 - lossPct)) * 100
}

// Pct returns part as a percentage of whole, or 0 when whole is not positive.
func Pct(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64()
}
