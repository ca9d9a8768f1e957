package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order on behalf of an actor. Visibility
// follows participation: the customer, the restaurant owner, the assigned
// driver and admins see the order; everyone else gets not-authorized.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order.
func NewGetOrderQuery(orderID kernel.UUID, actor kernel.Actor) (GetOrderQuery, error) {
	query := GetOrderQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setActor(actor),
	); err != nil {
		return GetOrderQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the requesting principal.
func (q GetOrderQuery) Actor() kernel.Actor {
	return q.actor
}

func (q *GetOrderQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetOrderQuery) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}

// GetOrderQueryResponse is the full order view.
type GetOrderQueryResponse struct {
	OrderID       kernel.UUID
	CustomerID    kernel.UUID
	RestaurantID  kernel.UUID
	Status        order.Status
	PaymentMethod order.PaymentMethod
	PaymentStatus order.PaymentStatus
	Street        string
	City          string
	PostalCode    string
	Notes         string
	Items         []GetOrderItemResponse
	Subtotal      kernel.Money
	DeliveryFee   kernel.Money
	Total         kernel.Money
	CreatedAt     time.Time
	ConfirmedAt   *time.Time
	ReadyAt       *time.Time
	PickedUpAt    *time.Time
	DeliveredAt   *time.Time
}

// GetOrderItemResponse is one frozen order line.
type GetOrderItemResponse struct {
	MenuItemID kernel.UUID
	Name       string
	UnitPrice  kernel.Money
	Quantity   int
	Subtotal   kernel.Money
}
