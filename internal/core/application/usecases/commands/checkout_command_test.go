package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckoutCommand(t *testing.T) {
	customerID := kernel.NewUUID()
	addressID := kernel.NewUUID()

	cmd, err := commands.NewCheckoutCommand(customerID, addressID, order.PaymentMethodCashOnDelivery)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())

	assert.True(t, cmd.CustomerID().IsEqual(customerID))
	assert.True(t, cmd.AddressID().IsEqual(addressID))
	assert.Equal(t, order.PaymentMethodCashOnDelivery, cmd.PaymentMethod())
}

func TestNewCheckoutCommand_Validation(t *testing.T) {
	_, err := commands.NewCheckoutCommand(kernel.UUID{}, kernel.NewUUID(), order.PaymentMethodCardOnline)
	require.Error(t, err)

	_, err = commands.NewCheckoutCommand(kernel.NewUUID(), kernel.UUID{}, order.PaymentMethodCardOnline)
	require.Error(t, err)

	_, err = commands.NewCheckoutCommand(kernel.NewUUID(), kernel.NewUUID(), order.PaymentMethodUnknown)
	require.Error(t, err)
}

func TestCheckoutCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CheckoutCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCheckoutCommandIsNotConstructed)
}
