package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// AddCartItemCommandHandler handles adding a catalog item to a cart.
//
// The handler consults the live catalog for the item's restaurant and
// availability; the cart itself never stores prices, so no snapshot is taken
// here. A missing cart is created on the fly.
type AddCartItemCommandHandler struct {
	uowFactory CartUoWFactory
	catalog    ports.CatalogClient
}

// NewAddCartItemCommandHandler creates a handler for cart additions.
func NewAddCartItemCommandHandler(uowFactory CartUoWFactory, catalog ports.CatalogClient) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the command. Returns an UnavailableItemError when the
// item is switched off in the catalog and a CrossRestaurantConflictError
// when the cart is bound to a different restaurant.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	menuItem, err := h.catalog.GetMenuItem(ctx, cmd.MenuItemID())
	if err != nil {
		return err
	}
	if !menuItem.IsAvailable {
		return order.NewUnavailableItemError(menuItem.ID, menuItem.Name)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()

	aggregate, err := cartRepo.Get(ctx, cmd.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		aggregate, err = cart.NewCart(cmd.CustomerID(), time.Now().UTC())
	}
	if err != nil {
		return err
	}

	if err = aggregate.AddItem(cmd.MenuItemID(), menuItem.RestaurantID, cmd.Quantity(), time.Now().UTC()); err != nil {
		return err
	}

	if err = cartRepo.Save(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
