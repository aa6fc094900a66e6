package models

// PartialReceipt is a possibly-incomplete receipt supplied from outside the
// app: a decoded share token or an imported JSON file. Pointer fields
// distinguish "absent" from zero values so a partial payload merges over
// defaults instead of blanking them.
type PartialReceipt struct {
	Currency     *Currency     `json:"currency,omitempty"`
	Venue        *string       `json:"venue,omitempty"`
	Items        []LineItem    `json:"items"`
	People       []Person      `json:"people"`
	Tax          *float64      `json:"tax,omitempty"`
	Tip          *float64      `json:"tip,omitempty"`
	RoundingMode *RoundingMode `json:"roundingMode,omitempty"`
	PaidBy       *string       `json:"paidBy,omitempty"`
}

// PartialFromReceipt snapshots a receipt's shareable fields.
func PartialFromReceipt(r Receipt) PartialReceipt {
	c := r.Clone()
	return PartialReceipt{
		Currency:     &c.Currency,
		Venue:        &c.Venue,
		Items:        c.Items,
		People:       c.People,
		Tax:          &c.Tax,
		Tip:          &c.Tip,
		RoundingMode: &c.RoundingMode,
		PaidBy:       &c.PaidBy,
	}
}

// Merge lays the partial over the given base receipt. Missing items or
// people become empty sequences, never nil carried over from the base.
func (p PartialReceipt) Merge(base Receipt) Receipt {
	out := base.Clone()
	if p.Currency != nil {
		out.Currency = *p.Currency
	}
	if p.Venue != nil {
		out.Venue = *p.Venue
	}
	out.Items = p.Items
	if out.Items == nil {
		out.Items = []LineItem{}
	}
	out.People = p.People
	if out.People == nil {
		out.People = []Person{}
	}
	if p.Tax != nil {
		out.Tax = *p.Tax
	}
	if p.Tip != nil {
		out.Tip = *p.Tip
	}
	if p.RoundingMode != nil {
		out.RoundingMode = *p.RoundingMode
	}
	if p.PaidBy != nil {
		out.PaidBy = *p.PaidBy
	}
	return out
}
