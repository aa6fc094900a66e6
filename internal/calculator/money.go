// Package calculator implements the bill-splitting math: per-item share
// allocation, per-person totals with proportional extras, rounding
// reconciliation, and settlement suggestions.
//
// Every function here is pure and total over finite inputs. Nothing mutates
// the receipt it is given, so calls are safe to repeat from any read context.
// Amounts stay unrounded through allocation and aggregation; rounding happens
// once, at the end of ComputeTotals, to avoid compounding cent errors across
// items.
package calculator

import (
	"math"

	"github.com/splitsnap/splitsnap/internal/models"
)

// RoundToCents rounds to 2 decimal digits, half away from zero.
func RoundToCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundToStep clamps v to >= 0 and rounds it to the nearest multiple of step.
func RoundToStep(v, step float64) float64 {
	v = math.Max(0, v)
	return RoundToCents(math.Round(v/step) * step)
}

// RoundCurrency rounds a currency amount per the receipt's rounding mode.
// RoundNone keeps cent precision; the other modes snap to their step.
func RoundCurrency(v float64, mode models.RoundingMode) float64 {
	v = math.Max(0, v)
	if mode == models.RoundNone {
		return RoundToCents(v)
	}
	return RoundToStep(v, mode.Step())
}
