package settlement

// MethodStyle is the display classification of a payment method
type MethodStyle struct {
	Method   PaymentMethod `json:"method"`
	Category string        `json:"category"`
	Icon     string        `json:"icon"`
	Color    string        `json:"color"`
}

var settlementStyles = []MethodStyle{
	{Method: MethodCash, Category: "cash", Icon: "banknote", Color: "green"},
	{Method: MethodPOS, Category: "card", Icon: "credit-card", Color: "blue"},
	{Method: MethodTransfer, Category: "bank", Icon: "building-bank", Color: "purple"},
	{Method: MethodCheque, Category: "document", Icon: "file-text", Color: "amber"},
}

// SettlementStyles returns the classification table for settlements
func SettlementStyles() []MethodStyle {
	out := make([]MethodStyle, len(settlementStyles))
	copy(out, settlementStyles)
	return out
}

// PaymentStyles returns the classification table for payments
func PaymentStyles() []MethodStyle {
	out := make([]MethodStyle, 0, len(settlementStyles))
	for _, s := range settlementStyles {
		if s.Method.ValidForPayment() {
			out = append(out, s)
		}
	}
	return out
}

// SettlementStyle looks up the style for a settlement method
func SettlementStyle(m PaymentMethod) (MethodStyle, bool) {
	return lookupStyle(SettlementStyles(), m)
}

// PaymentStyle looks up the style for a payment method. Cheque has none.
func PaymentStyle(m PaymentMethod) (MethodStyle, bool) {
	return lookupStyle(PaymentStyles(), m)
}

func lookupStyle(table []MethodStyle, m PaymentMethod) (MethodStyle, bool) {
	for _, s := range table {
		if s.Method == m {
			return s, true
		}
	}
	return MethodStyle{}, false
}
