package services_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func lineItem(t *testing.T, name, unitPrice string, quantity int) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), name, money(t, unitPrice), quantity)
	require.NoError(t, err)
	return item
}

func TestPricingCalculator_Price(t *testing.T) {
	calculator := services.NewPricingCalculator(money(t, "2.00"))

	items := []order.LineItem{
		lineItem(t, "Margherita", "4.50", 2),
		lineItem(t, "Cola", "2.00", 2),
	}

	subtotal, total, err := calculator.Price(items)
	require.NoError(t, err)

	assert.Equal(t, "13.00", subtotal.String())
	assert.Equal(t, "15.00", total.String())
}

func TestPricingCalculator_Price_SingleLine(t *testing.T) {
	calculator := services.NewPricingCalculator(money(t, "0.00"))

	subtotal, total, err := calculator.Price([]order.LineItem{
		lineItem(t, "Ramen", "11.90", 3),
	})
	require.NoError(t, err)

	assert.Equal(t, "35.70", subtotal.String())
	assert.True(t, subtotal.IsEqual(total))
}

func TestPricingCalculator_Price_RejectsEmptyOrder(t *testing.T) {
	calculator := services.NewPricingCalculator(money(t, "2.00"))

	_, _, err := calculator.Price(nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
