package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates. A
// cart is keyed by its owning customer; a customer has at most one cart.
type CartRepository interface {
	// Get retrieves the customer's cart.
	// Returns an ObjectNotFoundError when the customer has no cart yet.
	Get(ctx context.Context, customerID kernel.UUID) (*cart.Cart, error)

	// Save upserts the cart, guarded by the version loaded with the
	// aggregate. Returns a ConcurrencyConflictError when the stored version
	// moved on since the read.
	Save(ctx context.Context, aggregate *cart.Cart) error

	// Delete removes the customer's cart. Deleting an absent cart is not an
	// error.
	Delete(ctx context.Context, customerID kernel.UUID) error

	// DeleteVersioned removes the cart, guarded by the version loaded with
	// the aggregate. Returns a ConcurrencyConflictError when the stored
	// version moved on since the read, leaving the cart untouched.
	DeleteVersioned(ctx context.Context, aggregate *cart.Cart) error

	// PurgeAbandoned deletes carts not touched since the cutoff and returns
	// how many were removed. Used by the cleanup job.
	PurgeAbandoned(ctx context.Context, cutoff time.Time) (int64, error)
}
