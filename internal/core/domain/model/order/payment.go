package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// PaymentMethod selects how the customer pays. Only cash on delivery has
// real behavior in the core (auto-capture on delivery); card payments are
// captured by an external processor.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota
	PaymentMethodCashOnDelivery
	PaymentMethodCardOnline
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown:        "UNKNOWN",
		PaymentMethodCashOnDelivery: "CASH_ON_DELIVERY",
		PaymentMethodCardOnline:     "CARD_ONLINE",
	}
}

// PaymentMethodFromString parses the wire representation of a payment method.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for m, str := range getPaymentMethodStrings() {
		if m != PaymentMethodUnknown && str == s {
			return m, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate rejects PaymentMethodUnknown and out-of-range values.
func (m PaymentMethod) Validate() error {
	if m == PaymentMethodUnknown {
		return errs.NewValueIsInvalidError("paymentMethod")
	}
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func (m PaymentMethod) String() string {
	if s, ok := getPaymentMethodStrings()[m]; ok {
		return s
	}
	return "UNKNOWN"
}

// PaymentStatus is the payment axis of the order, independent from the
// delivery status.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentStatusPending
	PaymentStatusPaid
	PaymentStatusFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "UNKNOWN",
		PaymentStatusPending: "PENDING",
		PaymentStatusPaid:    "PAID",
		PaymentStatusFailed:  "FAILED",
	}
}

// PaymentStatusFromString parses the wire representation of a payment status.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for st, str := range getPaymentStatusStrings() {
		if st != PaymentStatusUnknown && str == s {
			return st, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate rejects PaymentStatusUnknown and out-of-range values.
func (s PaymentStatus) Validate() error {
	if s == PaymentStatusUnknown {
		return errs.NewValueIsInvalidError("paymentStatus")
	}
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
