package settlement

import (
	"fmt"
	"strings"

	"github.com/erp/orderdesk/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PaymentMethod is how money changed hands
type PaymentMethod string

const (
	MethodCash     PaymentMethod = "Cash"
	MethodPOS      PaymentMethod = "POS"
	MethodTransfer PaymentMethod = "Transfer"
	MethodCheque   PaymentMethod = "Cheque"
)

// IsValid checks if the method is known at all
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodPOS, MethodTransfer, MethodCheque:
		return true
	}
	return false
}

// ValidForPayment reports whether the method is accepted for request payments.
// Cheques are only taken for settlements.
func (m PaymentMethod) ValidForPayment() bool {
	return m.IsValid() && m != MethodCheque
}

// ValidForSettlement reports whether the method is accepted for settlements
func (m PaymentMethod) ValidForSettlement() bool {
	return m.IsValid()
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

var methodAliases = map[string]PaymentMethod{
	"Check":         MethodCheque,
	"Bank Transfer": MethodTransfer,
	"Card":          MethodPOS,
}

// ParsePaymentMethod accepts a method name in any letter case
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	title := cases.Title(language.English).String(strings.TrimSpace(s))
	if strings.EqualFold(title, string(MethodPOS)) {
		return MethodPOS, nil
	}
	if m := PaymentMethod(title); m.IsValid() {
		return m, nil
	}
	if m, ok := methodAliases[title]; ok {
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown payment method '%s'", shared.ErrInvalidInput, s)
}
