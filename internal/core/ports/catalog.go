package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// MenuItemSnapshot is the catalog's current view of a menu item: the data
// checkout freezes into an order line.
type MenuItemSnapshot struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID
	Name         string
	UnitPrice    kernel.Money
	IsAvailable  bool
}

// RestaurantSnapshot is the catalog's current view of a restaurant.
type RestaurantSnapshot struct {
	ID          kernel.UUID
	OwnerID     kernel.UUID
	Name        string
	IsAccepting bool
}

// CatalogClient is a read-only view of the restaurant catalog. The ordering
// core never mutates catalog data; it consults it when items enter the cart
// and freezes the relevant parts at checkout.
type CatalogClient interface {
	// GetMenuItem retrieves a single menu item.
	// Returns an ObjectNotFoundError when no such item exists.
	GetMenuItem(ctx context.Context, id kernel.UUID) (MenuItemSnapshot, error)

	// GetMenuItems retrieves the given menu items, preserving request order.
	// Returns an ObjectNotFoundError naming the first missing item.
	GetMenuItems(ctx context.Context, ids []kernel.UUID) ([]MenuItemSnapshot, error)

	// GetRestaurant retrieves a restaurant.
	// Returns an ObjectNotFoundError when no such restaurant exists.
	GetRestaurant(ctx context.Context, id kernel.UUID) (RestaurantSnapshot, error)
}
