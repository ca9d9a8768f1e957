package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderStatusChanged is the integration event emitted after every committed
// status change, including creation (with an unknown old status), claims and
// job-driven expiry. Consumers derive notifications and statistics from it.
type OrderStatusChanged struct {
	OrderID      kernel.UUID
	CustomerID   kernel.UUID
	RestaurantID kernel.UUID
	OldStatus    order.Status
	NewStatus    order.Status
	ActorRole    kernel.Role
	OccurredAt   time.Time
}

// EventPublisher publishes integration events to interested consumers.
//
// Publication happens after the owning transaction commits: a lost event
// costs a notification, while an event for a rolled-back change would lie.
type EventPublisher interface {
	// PublishOrderStatusChanged emits the event. Implementations log and
	// swallow broker failures rather than failing the calling operation.
	PublishOrderStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
