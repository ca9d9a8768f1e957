package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrAddCartItemCommandIsNotConstructed = errors.New(
	"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
)

// AddCartItemCommand represents a request to add a menu item to the
// customer's cart, binding the cart to the item's restaurant if it is empty.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	menuItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add a menu item to a cart.
// Validates that both identifiers are valid and the quantity is positive.
func NewAddCartItemCommand(customerID, menuItemID kernel.UUID, quantity int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setMenuItemID(menuItemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// CustomerID returns the cart owner.
func (c AddCartItemCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// MenuItemID returns the catalog item to add.
func (c AddCartItemCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

// Quantity returns how many units to add.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c *AddCartItemCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *AddCartItemCommand) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}

	c.menuItemID = menuItemID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}

	c.quantity = quantity
	return nil
}
