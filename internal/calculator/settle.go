package calculator

import "github.com/splitsnap/splitsnap/internal/models"

// Transfer is a suggested reimbursement from a non-payer to the payer.
type Transfer struct {
	From   models.Person `json:"from"`
	To     models.Person `json:"to"`
	Amount float64       `json:"amount"`
}

// SettlementSuggestions converts reconciled totals into transfers toward the
// designated payer: everyone with a positive rounded amount pays the payer
// that amount. The payer's own share is considered settled by having paid the
// receipt.
//
// Returns nil when PaidBy is unset or no longer resolves to a person.
func SettlementSuggestions(receipt models.Receipt) []Transfer {
	if receipt.PaidBy == "" {
		return nil
	}
	payer, ok := receipt.FindPerson(receipt.PaidBy)
	if !ok {
		return nil
	}

	totals := ComputeTotals(receipt)
	var transfers []Transfer
	for _, row := range totals.PerPerson {
		if row.Person.ID == payer.ID || row.Rounded <= 0 {
			continue
		}
		transfers = append(transfers, Transfer{From: row.Person, To: payer, Amount: row.Rounded})
	}
	return transfers
}
