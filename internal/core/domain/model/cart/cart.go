package cart

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrCartIsNotConstructed is returned when a Cart instance was not
	// created through NewCart or RestoreCart.
	ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart or RestoreCart")
)

// Item is one cart line: a catalog item reference and a quantity. Unit
// prices are not stored here; they are resolved from the live catalog at
// read time and snapshotted only at checkout.
type Item struct {
	menuItemID kernel.UUID
	quantity   int
}

// NewItem creates a validated cart line.
func NewItem(menuItemID kernel.UUID, quantity int) (Item, error) {
	if err := menuItemID.Validate(); err != nil {
		return Item{}, err
	}
	if quantity < 1 {
		return Item{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Item{menuItemID: menuItemID, quantity: quantity}, nil
}

// MenuItemID returns the referenced catalog item.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Quantity returns the line quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Cart is the per-customer aggregate accumulating items before checkout.
//
// Invariants:
//   - All items reference menu items of the single bound restaurant.
//   - The cart is unbound (no restaurant) exactly when it is empty.
//
// Only the owning customer mutates a cart, and the persistence layer
// serializes those mutations per customer with a version guard.
type Cart struct {
	customerID   kernel.UUID
	restaurantID *kernel.UUID
	items        []Item
	updatedAt    time.Time
	version      int

	isConstructed bool
}

// NewCart creates an empty, unbound cart for the customer. Carts are
// created lazily on first use.
func NewCart(customerID kernel.UUID, now time.Time) (*Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	return &Cart{
		customerID:    customerID,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreCart reconstructs a cart from persistence, re-validating the
// binding invariant.
func RestoreCart(
	customerID kernel.UUID,
	restaurantID *kernel.UUID,
	items []Item,
	updatedAt time.Time,
	version int,
) (*Cart, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	if len(items) == 0 && restaurantID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("restaurantId",
			errors.New("an empty cart must not be bound to a restaurant"))
	}
	if len(items) > 0 && restaurantID == nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("restaurantId",
			errors.New("a non-empty cart must be bound to a restaurant"))
	}

	return &Cart{
		customerID:    customerID,
		restaurantID:  restaurantID,
		items:         append([]Item(nil), items...),
		updatedAt:     updatedAt,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Cart instance was properly constructed.
func (c *Cart) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCartIsNotConstructed
	}
	return nil
}

// CustomerID returns the owning customer. It is also the cart's identity;
// a customer has at most one cart.
func (c *Cart) CustomerID() kernel.UUID {
	return c.customerID
}

// RestaurantID returns the bound restaurant, or nil for an empty cart.
func (c *Cart) RestaurantID() *kernel.UUID {
	return c.restaurantID
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	return append([]Item(nil), c.items...)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// UpdatedAt returns the last mutation time.
func (c *Cart) UpdatedAt() time.Time {
	return c.updatedAt
}

// Version returns the optimistic-concurrency version loaded from storage.
func (c *Cart) Version() int {
	return c.version
}

// AddItem upserts a line for the given catalog item. An empty cart binds to
// the item's restaurant; a bound cart rejects items from any other
// restaurant with a CrossRestaurantConflictError naming both restaurants so
// the caller can offer to clear the cart. Adding an item that is already in
// the cart adds to its quantity.
func (c *Cart) AddItem(menuItemID, itemRestaurantID kernel.UUID, quantity int, now time.Time) error {
	if err := itemRestaurantID.Validate(); err != nil {
		return err
	}

	line, err := NewItem(menuItemID, quantity)
	if err != nil {
		return err
	}

	if c.restaurantID != nil && !c.restaurantID.IsEqual(itemRestaurantID) {
		return NewCrossRestaurantConflictError(*c.restaurantID, itemRestaurantID)
	}

	if c.restaurantID == nil {
		c.restaurantID = &itemRestaurantID
	}

	for i := range c.items {
		if c.items[i].menuItemID.IsEqual(menuItemID) {
			c.items[i].quantity += quantity
			c.updatedAt = now
			return nil
		}
	}

	c.items = append(c.items, line)
	c.updatedAt = now
	return nil
}

// UpdateQuantity replaces the quantity of an existing line.
func (c *Cart) UpdateQuantity(menuItemID kernel.UUID, quantity int, now time.Time) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	for i := range c.items {
		if c.items[i].menuItemID.IsEqual(menuItemID) {
			c.items[i].quantity = quantity
			c.updatedAt = now
			return nil
		}
	}

	return NewItemNotInCartError(menuItemID)
}

// RemoveItem deletes a line; removing the last line unbinds the restaurant.
func (c *Cart) RemoveItem(menuItemID kernel.UUID, now time.Time) error {
	for i := range c.items {
		if c.items[i].menuItemID.IsEqual(menuItemID) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			if len(c.items) == 0 {
				c.restaurantID = nil
			}
			c.updatedAt = now
			return nil
		}
	}

	return NewItemNotInCartError(menuItemID)
}

// Clear removes all lines and unbinds the restaurant.
func (c *Cart) Clear(now time.Time) {
	c.items = nil
	c.restaurantID = nil
	c.updatedAt = now
}
