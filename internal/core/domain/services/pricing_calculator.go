package services

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// PricingCalculator is a domain service that prices an order from its line
// items and a flat delivery fee.
//
// Business rules:
//   - The subtotal is the sum of unit price times quantity over all lines.
//   - The total is the subtotal plus the delivery fee.
//   - Prices are the snapshots captured at checkout, never live catalog
//     prices, so a priced order is stable under later menu edits.
type PricingCalculator struct {
	deliveryFee kernel.Money
}

// NewPricingCalculator creates a PricingCalculator with the given flat
// delivery fee.
func NewPricingCalculator(deliveryFee kernel.Money) PricingCalculator {
	return PricingCalculator{deliveryFee: deliveryFee}
}

// DeliveryFee returns the configured flat delivery fee.
func (p PricingCalculator) DeliveryFee() kernel.Money {
	return p.deliveryFee
}

// Price computes the subtotal and total for the given line items.
func (p PricingCalculator) Price(items []order.LineItem) (subtotal, total kernel.Money, err error) {
	if len(items) == 0 {
		return kernel.Money{}, kernel.Money{},
			errs.NewValueIsRequiredErrorWithCause("items", errors.New("cannot price an empty order"))
	}

	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	return subtotal, subtotal.Add(p.deliveryFee), nil
}
