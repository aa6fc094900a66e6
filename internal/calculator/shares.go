package calculator

import "github.com/splitsnap/splitsnap/internal/models"

// Share is one person's slice of a single item.
type Share struct {
	PersonID string  `json:"personId"`
	Amount   float64 `json:"amount"`
}

// ItemShares divides an item's price evenly across its assignees, one share
// per assignee in assignment order. An unassigned item yields no shares: its
// price counts toward the receipt subtotal but toward nobody's total.
//
// Amounts are intentionally unrounded; ComputeTotals rounds once after
// aggregation.
//
// SplitEvenly=false currently computes the same even split. The field is
// reserved for weighted splitting.
func ItemShares(item models.LineItem) []Share {
	n := len(item.AssignedTo)
	if n == 0 {
		return nil
	}
	each := item.Price / float64(n)
	shares := make([]Share, n)
	for i, personID := range item.AssignedTo {
		shares[i] = Share{PersonID: personID, Amount: each}
	}
	return shares
}
