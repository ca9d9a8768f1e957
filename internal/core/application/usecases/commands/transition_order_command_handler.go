package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// TransitionOrderCommandHandler handles actor-requested status transitions.
//
// Order of checks: load, authorize the actor, then let the aggregate apply
// the edge. The version-guarded update turns a lost race into a
// ConcurrencyConflictError instead of a silently overwritten status. The
// status-changed event is published after the commit.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	authorizer services.TransitionAuthorizer
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	authorizer services.TransitionAuthorizer,
	publisher ports.EventPublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		publisher:  publisher,
	}
}

// Handle processes the transition request.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.authorizer.Authorize(cmd.Actor(), aggregate, cmd.Target()); err != nil {
		return err
	}

	oldStatus := aggregate.Status()
	now := time.Now().UTC()

	if err = aggregate.TransitionTo(cmd.Target(), now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderStatusChanged(ctx, ports.OrderStatusChanged{
		OrderID:      aggregate.ID(),
		CustomerID:   aggregate.CustomerID(),
		RestaurantID: aggregate.RestaurantID(),
		OldStatus:    oldStatus,
		NewStatus:    aggregate.Status(),
		ActorRole:    cmd.Actor().Role(),
		OccurredAt:   now,
	})

	return nil
}
