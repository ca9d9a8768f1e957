package amqp

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// NoopPublisher satisfies ports.EventPublisher when no broker is configured,
// for example in local development. Events are logged instead of published.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that only logs events.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger.With("component", "event_publisher")}
}

// PublishOrderStatusChanged logs the event and drops it.
func (p *NoopPublisher) PublishOrderStatusChanged(_ context.Context, event ports.OrderStatusChanged) error {
	p.logger.Debug("order status changed (event publishing disabled)",
		"order_id", event.OrderID.String(),
		"old_status", event.OldStatus.String(),
		"new_status", event.NewStatus.String(),
	)
	return nil
}
