package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateCartItemQuantityCommandIsNotConstructed = errors.New(
	"UpdateCartItemQuantityCommand must be created via NewUpdateCartItemQuantityCommand constructor",
)

// UpdateCartItemQuantityCommand represents a request to replace the quantity
// of a line already in the customer's cart.
type UpdateCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	menuItemID kernel.UUID
	quantity   int

	guard guard.ConstructorGuard
}

// NewUpdateCartItemQuantityCommand creates a command to change a line quantity.
func NewUpdateCartItemQuantityCommand(customerID, menuItemID kernel.UUID, quantity int) (UpdateCartItemQuantityCommand, error) {
	cmd := UpdateCartItemQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setMenuItemID(menuItemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateCartItemQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemQuantityCommandIsNotConstructed)
}

// CustomerID returns the cart owner.
func (c UpdateCartItemQuantityCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// MenuItemID returns the line to change.
func (c UpdateCartItemQuantityCommand) MenuItemID() kernel.UUID {
	return c.menuItemID
}

// Quantity returns the new quantity.
func (c UpdateCartItemQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateCartItemQuantityCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *UpdateCartItemQuantityCommand) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}

	c.menuItemID = menuItemID
	return nil
}

func (c *UpdateCartItemQuantityCommand) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidError("quantity")
	}

	c.quantity = quantity
	return nil
}
