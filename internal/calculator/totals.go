package calculator

import (
	"math"
	"sort"

	"github.com/splitsnap/splitsnap/internal/models"
)

// PersonTotal is one person's computed share of the receipt.
type PersonTotal struct {
	Person models.Person `json:"person"`

	// Base is the sum of this person's item shares, before extras.
	Base float64 `json:"base"`

	// WithExtras is Base plus the person's proportional slice of tax+tip.
	WithExtras float64 `json:"withExtras"`

	// Rounded is the final payable amount after rounding reconciliation.
	Rounded float64 `json:"rounded"`
}

// Totals is the full result of splitting a receipt.
type Totals struct {
	// Subtotal is the sum of all item prices, assigned or not.
	Subtotal float64 `json:"subtotal"`

	// Extras is tax plus tip.
	Extras float64 `json:"extras"`

	// Total is subtotal plus extras.
	Total float64 `json:"total"`

	// PerPerson preserves the receipt's people order.
	PerPerson []PersonTotal `json:"perPerson"`

	// RoundedTotal is Total snapped to the rounding mode; the target the
	// per-person rounded amounts are reconciled against.
	RoundedTotal float64 `json:"roundedTotal"`

	// RoundingDelta is RoundedTotal minus the reconciled sum. Normally ~0;
	// exposed as a diagnostic rather than hidden.
	RoundingDelta float64 `json:"roundingDelta"`
}

// ComputeTotals splits the receipt into per-person payable amounts.
//
// Extras are distributed proportionally to each person's unrounded base
// share. Each base+extras amount is rounded per the receipt's rounding mode,
// then reconciled so the rounded amounts sum to the rounded receipt total:
// while the gap is at least a cent, the person with the largest unrounded
// amount is nudged up one step (gap positive) or the one with the smallest is
// nudged down one step (gap negative), stopping once the gap is below one
// step. Output is deterministic for identical input.
func ComputeTotals(receipt models.Receipt) Totals {
	base := make(map[string]float64, len(receipt.People))
	for _, p := range receipt.People {
		base[p.ID] = 0
	}

	for _, item := range receipt.Items {
		for _, share := range ItemShares(item) {
			if _, ok := base[share.PersonID]; ok {
				base[share.PersonID] += share.Amount
			}
		}
	}

	extras := RoundToCents(receipt.Tax + receipt.Tip)

	var subtotal float64
	for _, item := range receipt.Items {
		subtotal += item.Price
	}
	subtotal = RoundToCents(subtotal)
	total := RoundToCents(subtotal + extras)

	// Spread extras proportional to base totals. With nothing assigned the
	// denominator falls back to 1, so every share stays 0.
	var sumBase float64
	for _, p := range receipt.People {
		sumBase += base[p.ID]
	}
	if sumBase == 0 {
		sumBase = 1
	}
	withExtras := make(map[string]float64, len(receipt.People))
	for _, p := range receipt.People {
		withExtras[p.ID] = base[p.ID] + extras*base[p.ID]/sumBase
	}

	rounded := make(map[string]float64, len(receipt.People))
	for _, p := range receipt.People {
		rounded[p.ID] = RoundCurrency(withExtras[p.ID], receipt.RoundingMode)
	}

	roundedSum := sumInPeopleOrder(receipt.People, rounded)
	target := RoundCurrency(total, receipt.RoundingMode)
	diff := RoundToCents(target - roundedSum)

	if math.Abs(diff) >= 0.01 && len(receipt.People) > 0 {
		// Nudge one step at a time until the gap is below one step,
		// preferring the largest unrounded amounts.
		order := make([]string, len(receipt.People))
		for i, p := range receipt.People {
			order[i] = p.ID
		}
		sort.SliceStable(order, func(i, j int) bool {
			return withExtras[order[i]] > withExtras[order[j]]
		})

		step := receipt.RoundingMode.Step()
		for math.Abs(diff) >= 0.001 {
			dir := 1.0
			pick := order[0]
			if diff < 0 {
				dir = -1.0
				pick = order[len(order)-1]
			}
			rounded[pick] = RoundToCents(rounded[pick] + dir*step)
			diff = RoundToCents(diff - dir*step)
			if math.Abs(diff) < step {
				break
			}
		}
	}

	roundedSum = sumInPeopleOrder(receipt.People, rounded)

	perPerson := make([]PersonTotal, len(receipt.People))
	for i, p := range receipt.People {
		perPerson[i] = PersonTotal{
			Person:     p,
			Base:       RoundToCents(base[p.ID]),
			WithExtras: RoundToCents(withExtras[p.ID]),
			Rounded:    RoundToCents(rounded[p.ID]),
		}
	}

	return Totals{
		Subtotal:      subtotal,
		Extras:        extras,
		Total:         total,
		PerPerson:     perPerson,
		RoundedTotal:  target,
		RoundingDelta: RoundToCents(target - roundedSum),
	}
}

// sumInPeopleOrder keeps float addition order fixed so results are
// reproducible bit for bit.
func sumInPeopleOrder(people []models.Person, amounts map[string]float64) float64 {
	var sum float64
	for _, p := range people {
		sum += amounts[p.ID]
	}
	return RoundToCents(sum)
}
