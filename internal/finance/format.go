package finance

import "github.com/shopspring/decimal"

// DisplayPlaces is the fixed precision of every formatted amount.
const DisplayPlaces = 2

// FormatAmount renders v with two decimals, rounding half away from zero.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(DisplayPlaces)
}

// FormatPercent renders v like FormatAmount with a trailing percent sign.
func FormatPercent(v float64) string {
	return FormatAmount(v) + "%"
}

