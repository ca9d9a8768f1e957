package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand represents a request to convert the customer's cart into
// a pending order, snapshotting prices and the delivery address.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	addressID     kernel.UUID
	paymentMethod order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout command. Validates that the customer
// and address identifiers are valid and the payment method is known.
func NewCheckoutCommand(customerID, addressID kernel.UUID, paymentMethod order.PaymentMethod) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setAddressID(addressID),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// CustomerID returns the customer checking out.
func (c CheckoutCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// AddressID returns the saved delivery address to snapshot.
func (c CheckoutCommand) AddressID() kernel.UUID {
	return c.addressID
}

// PaymentMethod returns the chosen payment method.
func (c CheckoutCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c *CheckoutCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}

	c.addressID = addressID
	return nil
}

func (c *CheckoutCommand) setPaymentMethod(paymentMethod order.PaymentMethod) error {
	if err := paymentMethod.Validate(); err != nil {
		return err
	}

	c.paymentMethod = paymentMethod
	return nil
}
