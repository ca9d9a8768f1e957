package cart

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// CrossRestaurantConflictError reports an attempt to add an item from a
// restaurant other than the one the cart is bound to. It names both
// restaurants so callers can offer to clear the cart. It unwraps to
// errs.ErrBusinessRuleViolated.
type CrossRestaurantConflictError struct {
	BoundRestaurantID kernel.UUID
	ItemRestaurantID  kernel.UUID
}

// NewCrossRestaurantConflictError creates a CrossRestaurantConflictError.
func NewCrossRestaurantConflictError(boundRestaurantID, itemRestaurantID kernel.UUID) *CrossRestaurantConflictError {
	return &CrossRestaurantConflictError{
		BoundRestaurantID: boundRestaurantID,
		ItemRestaurantID:  itemRestaurantID,
	}
}

func (e *CrossRestaurantConflictError) Error() string {
	return fmt.Sprintf("%s: cart is bound to restaurant %s, cannot add an item from restaurant %s",
		errs.ErrBusinessRuleViolated, e.BoundRestaurantID, e.ItemRestaurantID)
}

func (e *CrossRestaurantConflictError) Unwrap() error {
	return errs.ErrBusinessRuleViolated
}

// ItemNotInCartError reports an update or removal of a line the cart does
// not contain. It unwraps to errs.ErrObjectNotFound.
type ItemNotInCartError struct {
	MenuItemID kernel.UUID
}

// NewItemNotInCartError creates an ItemNotInCartError for the item.
func NewItemNotInCartError(menuItemID kernel.UUID) *ItemNotInCartError {
	return &ItemNotInCartError{MenuItemID: menuItemID}
}

func (e *ItemNotInCartError) Error() string {
	return fmt.Sprintf("%s: menu item %s is not in the cart",
		errs.ErrObjectNotFound, e.MenuItemID)
}

func (e *ItemNotInCartError) Unwrap() error {
	return errs.ErrObjectNotFound
}
