package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// AddressSnapshot is the address book's current view of a saved delivery
// address. Checkout freezes it into the order.
type AddressSnapshot struct {
	ID         kernel.UUID
	OwnerID    kernel.UUID
	Street     string
	City       string
	PostalCode string
	Notes      string
}

// AddressClient is a read-only view of customers' saved delivery addresses.
type AddressClient interface {
	// GetAddress retrieves a saved address.
	// Returns an ObjectNotFoundError when no such address exists.
	GetAddress(ctx context.Context, id kernel.UUID) (AddressSnapshot, error)
}
