package calculator

import (
	"math"
	"testing"

	"github.com/splitsnap/splitsnap/internal/models"
)

func TestRoundToCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{7, 7},
		{12.344, 12.34},
		{12.346, 12.35},
		{0.125, 0.13}, // half away from zero
		{24.5, 24.5},
		{3.333333333, 3.33},
	}
	for _, tt := range tests {
		if got := RoundToCents(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RoundToCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundToStep(t *testing.T) {
	tests := []struct {
		in   float64
		step float64
		want float64
	}{
		{-1.23, 0.05, 0},   // clamped to zero first
		{1.02, 0.05, 1.00},
		{1.03, 0.05, 1.05},
		{1.12, 0.05, 1.10},
		{1.13, 0.05, 1.15},
		{1.04, 0.10, 1.00},
		{1.07, 0.10, 1.10},
		{22.377551, 0.05, 22.40},
	}
	for _, tt := range tests {
		if got := RoundToStep(tt.in, tt.step); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RoundToStep(%v, %v) = %v, want %v", tt.in, tt.step, got, tt.want)
		}
	}
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		mode models.RoundingMode
		want float64
	}{
		{3.122449, models.RoundNearest05, 3.10},
		{3.122449, models.RoundNearest10, 3.10},
		{3.122449, models.RoundNone, 3.12},
		{-2.50, models.RoundNone, 0},
		{21.50, models.RoundNearest05, 21.50},
	}
	for _, tt := range tests {
		if got := RoundCurrency(tt.in, tt.mode); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("RoundCurrency(%v, %s) = %v, want %v", tt.in, tt.mode, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency models.Currency
		want     string
	}{
		{12.5, models.CurrencyCHF, "CHF 12.50"},
		{12.5, models.CurrencyEUR, "€12.50"},
		{12.5, models.CurrencyUSD, "$12.50"},
		{12.5, models.CurrencyGBP, "£12.50"},
		{12.5, models.CurrencyUnknown, "12.50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount, tt.currency); got != tt.want {
			t.Errorf("FormatMoney(%v, %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}
