package ui

import (
	"math"
	"strconv"
)

// Floor1 rounds v down to one decimal.
func Floor1(v float64) float64 {
	return math.Floor(v*10) / 10
}

func fmt1(v float64) string {
	return strconv.FormatFloat(Floor1(v), 'f', -1, 64)
}

// FormatStock renders a stock as "value / max", each floored to one decimal.
func FormatStock(value, max float64) string {
	return fmt1(value) + " / " + fmt1(max)
}

// FormatGain renders a per-cycle rate with an explicit sign.
func FormatGain(gain float64) string {
	if gain < 0 {
		return fmt1(gain)
	}
	return "+" + fmt1(gain)
}
