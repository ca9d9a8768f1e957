package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

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

type orderFixture struct {
	customerID kernel.UUID
	ownerID    kernel.UUID
	driverID   kernel.UUID
}

// orderInStatus restores an order with a status/driver combination that the
// domain accepts, so handler tests can start from any point of the lifecycle.
func orderInStatus(t *testing.T, fixture orderFixture, status order.Status) *order.Order {
	t.Helper()

	address, err := order.NewDeliveryAddress("1 Main St", "Springfield", "12345", "")
	require.NoError(t, err)

	var driver *kernel.UUID
	if status.IsDriverActive() || status == order.StatusDelivered || status == order.StatusFailedDelivery {
		driver = &fixture.driverID
	}

	o, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:                kernel.NewUUID(),
		CustomerID:        fixture.customerID,
		RestaurantID:      kernel.NewUUID(),
		RestaurantOwnerID: fixture.ownerID,
		DriverID:          driver,
		Items:             []order.LineItem{lineItem(t, "Margherita", "10.00", 1)},
		DeliveryAddress:   address,
		Subtotal:          money(t, "10.00"),
		DeliveryFee:       money(t, "2.00"),
		Total:             money(t, "12.00"),
		Status:            status,
		PaymentMethod:     order.PaymentMethodCashOnDelivery,
		PaymentStatus:     order.PaymentStatusPending,
		CreatedAt:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Version:           1,
	})
	require.NoError(t, err)
	return o
}
