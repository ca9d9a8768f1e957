package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ExpirePendingOrdersCommandHandler cancels stale pending orders on behalf
// of the restaurant. Each expired order goes through the regular state
// machine, so timestamps and payment rules apply as in a manual
// cancellation, and one event per order is published after the commit.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewExpirePendingOrdersCommandHandler creates a handler for pending order expiry.
func NewExpirePendingOrdersCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the expiry sweep and returns how many orders it cancelled.
func (h *ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, cmd ExpirePendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	cutoff := now.Add(-cmd.MaxPendingAge())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	stale, err := orderRepo.GetPendingOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	for _, aggregate := range stale {
		if err = aggregate.TransitionTo(order.StatusCancelledByRestaurant, now); err != nil {
			return 0, err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, aggregate := range stale {
		_ = h.publisher.PublishOrderStatusChanged(ctx, ports.OrderStatusChanged{
			OrderID:      aggregate.ID(),
			CustomerID:   aggregate.CustomerID(),
			RestaurantID: aggregate.RestaurantID(),
			OldStatus:    order.StatusPending,
			NewStatus:    order.StatusCancelledByRestaurant,
			ActorRole:    kernel.RoleAdmin,
			OccurredAt:   now,
		})
	}

	return len(stale), nil
}
