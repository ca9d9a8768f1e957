// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, read-only clients for the
// catalog and address book, and the event publisher. These interfaces keep
// the domain free of persistence and transport concerns.
package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, guarded by the
	// version loaded with the aggregate. Returns a ConcurrencyConflictError
	// when the stored version moved on since the read.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// HasActiveDelivery reports whether the driver currently holds an order
	// in a driver-active status.
	HasActiveDelivery(ctx context.Context, driverID kernel.UUID) (bool, error)

	// Claim atomically assigns the driver to the order, succeeding only if
	// the order is still ready for pickup and unassigned. On success the
	// returned aggregate reflects the assignment. When the single conditional
	// write affects no row, the repository re-reads the order to report why:
	// an ObjectNotFoundError if it does not exist, an AlreadyClaimedError if
	// another driver won the race, or an InvalidStateTransitionError if the
	// order is not ready for pickup.
	Claim(ctx context.Context, orderID, driverID kernel.UUID) (*order.Order, error)

	// GetPendingOlderThan retrieves orders still pending whose creation time
	// is before the cutoff. Used by the expiry job.
	GetPendingOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
