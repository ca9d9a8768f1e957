package commands

import (
	"context"
	"time"
)

// UpdateCartItemQuantityCommandHandler handles quantity changes on cart lines.
type UpdateCartItemQuantityCommandHandler struct {
	uowFactory CartUoWFactory
}

// NewUpdateCartItemQuantityCommandHandler creates a handler for quantity changes.
func NewUpdateCartItemQuantityCommandHandler(uowFactory CartUoWFactory) UpdateCartItemQuantityCommandHandler {
	return UpdateCartItemQuantityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Returns an ObjectNotFoundError when the
// customer has no cart and an ItemNotInCartError when the line is absent.
func (h *UpdateCartItemQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateCartItemQuantityCommand) error {
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

	cartRepo := uow.CartRepository()

	aggregate, err := cartRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateQuantity(cmd.MenuItemID(), cmd.Quantity(), time.Now().UTC()); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
