package calculator

import "github.com/splitsnap/splitsnap/internal/models"

// AuditLine explains one item's contribution to a person's total.
type AuditLine struct {
	Item  models.LineItem `json:"item"`
	Share float64         `json:"share"`
}

// AuditTrail lists, in receipt order, every item assigned to the person and
// the person's cent-rounded share of it. This is the "why do I owe this"
// breakdown behind a per-person total.
func AuditTrail(receipt models.Receipt, personID string) []AuditLine {
	var lines []AuditLine
	for _, item := range receipt.Items {
		if !item.IsAssignedTo(personID) {
			continue
		}
		var share float64
		for _, s := range ItemShares(item) {
			if s.PersonID == personID {
				share = s.Amount
				break
			}
		}
		lines = append(lines, AuditLine{Item: item, Share: RoundToCents(share)})
	}
	return lines
}
