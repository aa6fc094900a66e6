// Package scan turns raw OCR text into line-item candidates.
//
// The optical recognition itself is an external collaborator (Recognizer);
// this package only applies the heuristics that pull {name, price} pairs and
// a currency guess out of whatever text the engine produced. Candidates are
// suggestions for the user to confirm, so the heuristics favor dropping noise
// over keeping everything.
package scan

import (
	"context"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/splitsnap/splitsnap/internal/models"
)

// Recognizer is the OCR engine boundary: image in, raw text out.
type Recognizer interface {
	Recognize(ctx context.Context, image io.Reader) (string, error)
}

// Candidate is one {name, price} pair extracted from the text.
type Candidate struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Result is the outcome of parsing one receipt's text.
type Result struct {
	RawText  string          `json:"rawText"`
	Currency models.Currency `json:"currency"`
	Items    []Candidate     `json:"items"`
}

var (
	spaceRe  = regexp.MustCompile(`\s+`)
	symbolRe = regexp.MustCompile(`[^\w\s.,'\-–—/:()]`)
	priceRe  = regexp.MustCompile(`(\d+\.?\d{0,2})$`)
	totalsRe = regexp.MustCompile(`(TOTAL|SUMME|SUBTOTAL|MWST|TAX|TIP|GRATUITY|CHANGE)`)
)

// Parse extracts item candidates and a currency guess from raw OCR text.
func Parse(rawText string) Result {
	currency := GuessCurrency(rawText)

	var items []Candidate
	for _, line := range strings.Split(rawText, "\n") {
		line = normalizeLine(line)
		if line == "" {
			continue
		}

		// Heuristic: lines that end with a price and have some name.
		parts := strings.Split(line, " ")
		if len(parts) < 2 {
			continue
		}

		price, ok := parsePriceToken(parts[len(parts)-1])
		if !ok {
			continue
		}

		name := strings.TrimSpace(strings.Join(parts[:len(parts)-1], " "))
		if name == "" {
			continue
		}

		// Totals, tax and change lines are not items.
		if totalsRe.MatchString(strings.ToUpper(name)) {
			continue
		}

		if price <= 0 {
			continue
		}

		items = append(items, Candidate{Name: name, Price: price})
	}

	return Result{RawText: rawText, Currency: currency, Items: dedupe(items)}
}

// GuessCurrency looks for currency markers anywhere in the text.
func GuessCurrency(text string) models.Currency {
	t := strings.ToUpper(text)
	switch {
	case strings.Contains(t, "CHF") || strings.Contains(t, "FR."):
		return models.CurrencyCHF
	case strings.Contains(t, "EUR") || strings.Contains(t, "€"):
		return models.CurrencyEUR
	case strings.Contains(t, "USD") || strings.Contains(t, "$"):
		return models.CurrencyUSD
	case strings.Contains(t, "GBP") || strings.Contains(t, "£"):
		return models.CurrencyGBP
	default:
		return models.CurrencyUnknown
	}
}

func normalizeLine(line string) string {
	line = spaceRe.ReplaceAllString(line, " ")
	line = symbolRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// parsePriceToken reads a trailing price, tolerating OCR variants like
// 12.50, 12,50 and 1'234.50.
func parsePriceToken(token string) (float64, bool) {
	cleaned := strings.ReplaceAll(token, "'", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	m := priceRe.FindStringSubmatch(cleaned)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// dedupe drops sequential near-duplicates, which scanners love to produce.
func dedupe(items []Candidate) []Candidate {
	var out []Candidate
	for _, it := range items {
		if len(out) > 0 {
			prev := out[len(out)-1]
			if strings.EqualFold(prev.Name, it.Name) && math.Abs(prev.Price-it.Price) < 0.01 {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}
