package models

// LineItem represents a single line item on a receipt.
// Items can be shared among multiple people.
type LineItem struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`

	// Name is the description of the item (e.g., "Pizza", "Beer").
	Name string `json:"name"`

	// Price is the item price in major currency units (e.g., 12.50).
	// Never negative.
	Price float64 `json:"price"`

	// AssignedTo lists the person IDs this item's cost is attributed to.
	// Empty means unassigned: the price still counts toward the receipt
	// subtotal but toward nobody's personal total.
	AssignedTo []string `json:"assignedTo"`

	// SplitEvenly is true when the price is divided equally across
	// AssignedTo. False is accepted and persisted but currently computes
	// identically; reserved for weighted splitting.
	SplitEvenly bool `json:"splitEvenly"`
}

// IsAssignedTo reports whether the item is assigned to the given person.
func (it LineItem) IsAssignedTo(personID string) bool {
	for _, id := range it.AssignedTo {
		if id == personID {
			return true
		}
	}
	return false
}
