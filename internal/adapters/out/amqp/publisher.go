// Package amqp publishes order integration events to a RabbitMQ topic
// exchange. Events are emitted after the owning transaction commits, so a
// broker outage can only cost notifications, never order state; publish
// failures are logged and swallowed.
package amqp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"marketplace/internal/core/ports"

	amqp091 "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange all order events go through.
const ExchangeName = "order.events"

// orderStatusChangedMessage is the wire form of the event.
type orderStatusChangedMessage struct {
	OrderID      string    `json:"order_id"`
	CustomerID   string    `json:"customer_id"`
	RestaurantID string    `json:"restaurant_id"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	ActorRole    string    `json:"actor_role"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher implements ports.EventPublisher over a RabbitMQ connection.
//
// Messages are persistent JSON, routed by the new status so consumers can
// bind selectively, e.g. "orders.status.delivered" for receipts or
// "orders.status.*" for a full feed.
type Publisher struct {
	conn   *amqp091.Connection
	ch     *amqp091.Channel
	logger *slog.Logger

	mu sync.Mutex
}

// NewPublisher dials the broker and declares the topic exchange.
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Publisher{
		conn:   conn,
		ch:     ch,
		logger: logger.With("component", "event_publisher"),
	}, nil
}

// PublishOrderStatusChanged emits the event with routing key
// "orders.status.<new_status>". Broker failures are logged, not returned.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	body, err := json.Marshal(orderStatusChangedMessage{
		OrderID:      event.OrderID.String(),
		CustomerID:   event.CustomerID.String(),
		RestaurantID: event.RestaurantID.String(),
		OldStatus:    event.OldStatus.String(),
		NewStatus:    event.NewStatus.String(),
		ActorRole:    event.ActorRole.String(),
		OccurredAt:   event.OccurredAt,
	})
	if err != nil {
		return err
	}

	routingKey := "orders.status." + strings.ToLower(event.NewStatus.String())

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp091.Publishing{
		DeliveryMode: amqp091.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.logger.Warn("failed to publish order status change",
			"order_id", event.OrderID.String(),
			"routing_key", routingKey,
			"error", err,
		)
		return nil
	}

	p.logger.Debug("published order status change",
		"order_id", event.OrderID.String(),
		"routing_key", routingKey,
	)
	return nil
}

// Close shuts the channel and connection down.
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
