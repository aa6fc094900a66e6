package models

// Currency identifies the receipt's currency as guessed from the scan or set
// explicitly. No conversion happens anywhere; it only affects display.
type Currency string

const (
	CurrencyCHF     Currency = "CHF"
	CurrencyEUR     Currency = "EUR"
	CurrencyUSD     Currency = "USD"
	CurrencyGBP     Currency = "GBP"
	CurrencyUnknown Currency = "UNKNOWN"
)

// RoundingMode is the policy for snapping per-person amounts to a coarser
// denomination, common for cash payments (e.g. Swiss 5-cent rounding).
type RoundingMode string

const (
	RoundNearest05 RoundingMode = "nearest-0.05"
	RoundNearest10 RoundingMode = "nearest-0.10"
	RoundNone      RoundingMode = "none"
)

// Step returns the rounding increment for the mode. RoundNone still reports
// one cent because reconciliation nudges in cents when no coarser rounding
// applies.
func (m RoundingMode) Step() float64 {
	switch m {
	case RoundNearest10:
		return 0.10
	case RoundNearest05:
		return 0.05
	default:
		return 0.01
	}
}

// Receipt is the full bill document being split.
type Receipt struct {
	// Currency of the amounts on the receipt.
	Currency Currency `json:"currency"`

	// Venue is the optional restaurant/shop name.
	Venue string `json:"venue,omitempty"`

	// Items are the line items, in entry order.
	Items []LineItem `json:"items"`

	// People are the participants, in entry order.
	People []Person `json:"people"`

	// Tax and Tip are the extras distributed proportionally to each
	// person's share of the items. Never negative.
	Tax float64 `json:"tax"`
	Tip float64 `json:"tip"`

	// RoundingMode controls how final per-person amounts are snapped.
	RoundingMode RoundingMode `json:"roundingMode"`

	// PaidBy optionally names the person who paid the whole receipt, for
	// settlement suggestions. Empty or dangling means unset.
	PaidBy string `json:"paidBy,omitempty"`
}

// DefaultReceipt returns an empty receipt with the app defaults.
func DefaultReceipt() Receipt {
	return Receipt{
		Currency:     CurrencyUnknown,
		Items:        []LineItem{},
		People:       []Person{},
		RoundingMode: RoundNearest05,
	}
}

// FindPerson returns the person with the given ID, or false.
func (r Receipt) FindPerson(id string) (Person, bool) {
	for _, p := range r.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Clone returns a deep copy of the receipt. Item assignment slices are
// copied too, so history snapshots never alias live state.
func (r Receipt) Clone() Receipt {
	out := r
	out.Items = make([]LineItem, len(r.Items))
	for i, it := range r.Items {
		out.Items[i] = it
		out.Items[i].AssignedTo = append(make([]string, 0, len(it.AssignedTo)), it.AssignedTo...)
	}
	out.People = append(make([]Person, 0, len(r.People)), r.People...)
	return out
}
