package enums

import "fmt"

// PaymentMethod describes how a sale was settled.
type PaymentMethod string

const (
	PaymentMethodPix      PaymentMethod = "Pix"
	PaymentMethodDinheiro PaymentMethod = "Dinheiro"
	PaymentMethodDebito   PaymentMethod = "Débito"
	PaymentMethodCredito  PaymentMethod = "Crédito"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodPix,
	PaymentMethodDinheiro,
	PaymentMethodDebito,
	PaymentMethodCredito,
}

// DefaultPaymentMethod applies when a sale omits forma_pagamento.
const DefaultPaymentMethod = PaymentMethodDinheiro

// PaymentMethods lists the accepted values in display order.
func PaymentMethods() []PaymentMethod {
	return append([]PaymentMethod(nil), validPaymentMethods...)
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
