// Package queries contains read-side operations of the CQRS architecture.
// Query handlers bypass the domain model and read the database directly,
// shaping rows into response structs for the transport layer.
package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery retrieves the customer's cart with live catalog data: current
// unit prices and availability flags, so the customer sees price changes
// before checkout freezes them.
type GetCartQuery struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a query for the customer's cart.
func NewGetCartQuery(customerID kernel.UUID) (GetCartQuery, error) {
	query := GetCartQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setCustomerID(customerID); err != nil {
		return GetCartQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// CustomerID returns the cart owner.
func (q GetCartQuery) CustomerID() kernel.UUID {
	return q.customerID
}

func (q *GetCartQuery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	q.customerID = customerID
	return nil
}

// GetCartQueryResponse is the customer's cart as the API renders it. An
// absent cart reads as an empty one.
type GetCartQueryResponse struct {
	CustomerID   kernel.UUID
	RestaurantID *kernel.UUID
	Items        []GetCartItemResponse
	Subtotal     kernel.Money
}

// GetCartItemResponse is one cart line with the catalog's current price.
type GetCartItemResponse struct {
	MenuItemID  kernel.UUID
	Name        string
	UnitPrice   kernel.Money
	Quantity    int
	Subtotal    kernel.Money
	IsAvailable bool
}
