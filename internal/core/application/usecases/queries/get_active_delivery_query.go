package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetActiveDeliveryQueryIsNotConstructed = errors.New(
	"GetActiveDeliveryQuery must be created via NewGetActiveDeliveryQuery constructor",
)

// GetActiveDeliveryQuery retrieves the driver's current delivery, if any:
// the order they claimed and have not yet delivered or failed.
type GetActiveDeliveryQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveDeliveryQuery creates a query for the driver's active order.
func NewGetActiveDeliveryQuery(driverID kernel.UUID) (GetActiveDeliveryQuery, error) {
	query := GetActiveDeliveryQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDriverID(driverID); err != nil {
		return GetActiveDeliveryQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveryQueryIsNotConstructed)
}

// DriverID returns the driver whose delivery is requested.
func (q GetActiveDeliveryQuery) DriverID() kernel.UUID {
	return q.driverID
}

func (q *GetActiveDeliveryQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	q.driverID = driverID
	return nil
}

// GetActiveDeliveryQueryResponse is the driver's current job with the full
// delivery address.
type GetActiveDeliveryQueryResponse struct {
	OrderID      kernel.UUID
	RestaurantID kernel.UUID
	Status       order.Status
	Street       string
	City         string
	PostalCode   string
	Notes        string
	Total        kernel.Money
}
