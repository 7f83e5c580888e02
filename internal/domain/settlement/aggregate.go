package settlement

import (
	"github.com/shopspring/decimal"
)

// BalanceState classifies what is left to pay
type BalanceState string

const (
	BalanceUnpaid   BalanceState = "unpaid"
	BalancePartial  BalanceState = "partial"
	BalanceSettled  BalanceState = "settled"
	BalanceOverpaid BalanceState = "overpaid"
)

// TotalPaid sums the amounts of records. An empty list totals zero and the
// order of records does not matter.
func TotalPaid[R Record](records []R) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Base().Amount)
	}
	return total
}

// Outstanding returns owed minus paid. Overpayment yields a negative amount.
func Outstanding(owed, paid decimal.Decimal) decimal.Decimal {
	return owed.Sub(paid)
}

// StateOf classifies a balance
func StateOf(owed, paid decimal.Decimal) BalanceState {
	remaining := Outstanding(owed, paid)
	switch {
	case remaining.IsNegative():
		return BalanceOverpaid
	case remaining.IsZero():
		return BalanceSettled
	case paid.IsPositive():
		return BalancePartial
	}
	return BalanceUnpaid
}

// Summary is the aggregate view over a set of records
type Summary struct {
	TotalOwed   decimal.Decimal                   `json:"total_owed"`
	TotalPaid   decimal.Decimal                   `json:"total_paid"`
	Outstanding decimal.Decimal                   `json:"outstanding"`
	Count       int                               `json:"count"`
	ByMethod    map[PaymentMethod]decimal.Decimal `json:"by_method"`
	State       BalanceState                      `json:"state"`
}

// Summarize aggregates records against an owed amount
func Summarize[R Record](owed decimal.Decimal, records []R) Summary {
	paid := TotalPaid(records)
	byMethod := make(map[PaymentMethod]decimal.Decimal)
	for _, r := range records {
		e := r.Base()
		byMethod[e.Method] = byMethod[e.Method].Add(e.Amount)
	}
	return Summary{
		TotalOwed:   owed,
		TotalPaid:   paid,
		Outstanding: Outstanding(owed, paid),
		Count:       len(records),
		ByMethod:    byMethod,
		State:       StateOf(owed, paid),
	}
}
