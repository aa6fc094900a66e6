package calculator

import (
	"fmt"

	"github.com/splitsnap/splitsnap/internal/models"
)

// FormatMoney renders an amount for display in the receipt's currency.
// CHF uses the Swiss "CHF 12.50" convention; the others prefix a symbol.
func FormatMoney(amount float64, currency models.Currency) string {
	switch currency {
	case models.CurrencyCHF:
		return fmt.Sprintf("CHF %.2f", amount)
	case models.CurrencyEUR:
		return fmt.Sprintf("€%.2f", amount)
	case models.CurrencyUSD:
		return fmt.Sprintf("$%.2f", amount)
	case models.CurrencyGBP:
		return fmt.Sprintf("£%.2f", amount)
	default:
		return fmt.Sprintf("%.2f", amount)
	}
}
