package commands

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ClaimDeliveryCommandHandler handles drivers claiming ready orders.
//
// The claim itself is a single conditional write in the repository, so two
// drivers racing for the same order cannot both win regardless of how their
// transactions interleave. The one-active-delivery rule is checked up front
// for a precise error; the partial unique index on active driver
// assignments catches the same driver racing onto a second order.
type ClaimDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewClaimDeliveryCommandHandler creates a handler for delivery claims.
func NewClaimDeliveryCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) ClaimDeliveryCommandHandler {
	return ClaimDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the claim. Returns a DriverHasActiveDeliveryError when
// the driver already holds an active order, an AlreadyClaimedError when
// another driver won the race, and an InvalidStateTransitionError when the
// order is not ready for pickup.
func (h *ClaimDeliveryCommandHandler) Handle(ctx context.Context, cmd ClaimDeliveryCommand) error {
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

	hasActive, err := orderRepo.HasActiveDelivery(ctx, cmd.DriverID())
	if err != nil {
		return err
	}
	if hasActive {
		return order.NewDriverHasActiveDeliveryError(cmd.DriverID())
	}

	claimed, err := orderRepo.Claim(ctx, cmd.OrderID(), cmd.DriverID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishOrderStatusChanged(ctx, ports.OrderStatusChanged{
		OrderID:      claimed.ID(),
		CustomerID:   claimed.CustomerID(),
		RestaurantID: claimed.RestaurantID(),
		OldStatus:    order.StatusReadyForPickup,
		NewStatus:    claimed.Status(),
		ActorRole:    kernel.RoleDriver,
		OccurredAt:   time.Now().UTC(),
	})

	return nil
}
