package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"GetAvailableDeliveriesQuery must be created via NewGetAvailableDeliveriesQuery constructor",
)

// GetAvailableDeliveriesQuery retrieves orders that are ready for pickup and
// have no driver yet: the board drivers pick their next job from.
type GetAvailableDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDeliveriesQuery creates a parameterless query for
// claimable orders.
func NewGetAvailableDeliveriesQuery() GetAvailableDeliveriesQuery {
	return GetAvailableDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveriesQueryIsNotConstructed)
}

// GetAvailableDeliveriesQueryResponse is one claimable order: enough for a
// driver to judge the job without exposing the customer.
type GetAvailableDeliveriesQueryResponse struct {
	OrderID      kernel.UUID
	RestaurantID kernel.UUID
	Street       string
	City         string
	Total        kernel.Money
	ReadyAt      time.Time
}
