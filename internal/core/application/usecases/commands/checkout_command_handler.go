package commands

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CheckoutCommandHandler converts a cart into a pending order.
//
// The handler snapshots everything the order needs to stay stable under
// later catalog and address edits: item names and unit prices, the delivery
// address fields, and the restaurant's owner. The order is created and the
// cart dropped in one transaction; the creation event is published after the
// commit.
type CheckoutCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.CatalogClient
	addresses  ports.AddressClient
	pricing    services.PricingCalculator
	publisher  ports.EventPublisher
}

// NewCheckoutCommandHandler creates a handler for checkout.
func NewCheckoutCommandHandler(
	uowFactory UoWFactory,
	catalog ports.CatalogClient,
	addresses ports.AddressClient,
	pricing services.PricingCalculator,
	publisher ports.EventPublisher,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		addresses:  addresses,
		pricing:    pricing,
		publisher:  publisher,
	}
}

// Handle processes the checkout and returns the identifier of the created
// order. Business failures include an empty cart, an unavailable item, a
// restaurant that stopped accepting orders, and an address not owned by the
// customer.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	address, err := h.addresses.GetAddress(ctx, cmd.AddressID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !address.OwnerID.IsEqual(cmd.CustomerID()) {
		return kernel.UUID{}, errs.NewNotAuthorizedError(kernel.RoleCustomer.String(),
			"customers may only deliver to their own saved addresses")
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.CartRepository().Get(ctx, cmd.CustomerID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, errs.NewBusinessRuleError("cannot check out an empty cart")
	}
	if err != nil {
		return kernel.UUID{}, err
	}
	if aggregate.IsEmpty() || aggregate.RestaurantID() == nil {
		return kernel.UUID{}, errs.NewBusinessRuleError("cannot check out an empty cart")
	}

	restaurant, err := h.catalog.GetRestaurant(ctx, *aggregate.RestaurantID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !restaurant.IsAccepting {
		return kernel.UUID{}, errs.NewBusinessRuleError("restaurant is not accepting orders")
	}

	items, err := h.snapshotLineItems(ctx, aggregate)
	if err != nil {
		return kernel.UUID{}, err
	}

	subtotal, total, err := h.pricing.Price(items)
	if err != nil {
		return kernel.UUID{}, err
	}

	deliveryAddress, err := order.NewDeliveryAddress(address.Street, address.City, address.PostalCode, address.Notes)
	if err != nil {
		return kernel.UUID{}, err
	}

	now := time.Now().UTC()
	created, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.CustomerID(),
		restaurant.ID,
		restaurant.OwnerID,
		items,
		deliveryAddress,
		subtotal,
		h.pricing.DeliveryFee(),
		total,
		cmd.PaymentMethod(),
		now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.CartRepository().DeleteVersioned(ctx, aggregate); err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	_ = h.publisher.PublishOrderStatusChanged(ctx, ports.OrderStatusChanged{
		OrderID:      created.ID(),
		CustomerID:   created.CustomerID(),
		RestaurantID: created.RestaurantID(),
		OldStatus:    order.StatusUnknown,
		NewStatus:    order.StatusPending,
		ActorRole:    kernel.RoleCustomer,
		OccurredAt:   now,
	})

	return created.ID(), nil
}

// snapshotLineItems freezes the cart lines against the live catalog,
// rejecting items that went unavailable or moved to another restaurant
// since they entered the cart.
func (h *CheckoutCommandHandler) snapshotLineItems(ctx context.Context, aggregate *cart.Cart) ([]order.LineItem, error) {
	cartItems := aggregate.Items()

	ids := make([]kernel.UUID, 0, len(cartItems))
	for _, item := range cartItems {
		ids = append(ids, item.MenuItemID())
	}

	snapshots, err := h.catalog.GetMenuItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(cartItems))
	for i, snapshot := range snapshots {
		if !snapshot.IsAvailable {
			return nil, order.NewUnavailableItemError(snapshot.ID, snapshot.Name)
		}
		if !snapshot.RestaurantID.IsEqual(*aggregate.RestaurantID()) {
			return nil, errs.NewBusinessRuleError("cart contains an item from another restaurant")
		}

		item, err := order.NewLineItem(snapshot.ID, snapshot.Name, snapshot.UnitPrice, cartItems[i].Quantity())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
