package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery lists orders visible to an actor. The scope follows the
// role: customers see their own history, restaurant owners the orders placed
// at their restaurants, drivers the orders they delivered or carry, and
// admins everything.
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	actor kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a listing query for the actor.
func NewGetOrdersQuery(actor kernel.Actor) (GetOrdersQuery, error) {
	query := GetOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setActor(actor); err != nil {
		return GetOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Actor returns the requesting principal.
func (q GetOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q *GetOrdersQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

// GetOrderSummaryResponse is one row of the listing, newest first.
type GetOrderSummaryResponse struct {
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	Status       order.Status
	Total        kernel.Money
	CreatedAt    time.Time
}
