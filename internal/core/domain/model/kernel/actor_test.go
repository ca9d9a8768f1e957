package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleFromString(t *testing.T) {
	cases := map[string]kernel.Role{
		"CUSTOMER":         kernel.RoleCustomer,
		"RESTAURANT_OWNER": kernel.RoleRestaurantOwner,
		"DRIVER":           kernel.RoleDriver,
		"ADMIN":            kernel.RoleAdmin,
	}

	for s, want := range cases {
		role, err := kernel.RoleFromString(s)
		require.NoError(t, err)
		assert.Equal(t, want, role)
		assert.Equal(t, s, role.String())
	}

	_, err := kernel.RoleFromString("COURIER")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRole_Validate(t *testing.T) {
	require.NoError(t, kernel.RoleDriver.Validate())
	require.Error(t, kernel.RoleUnknown.Validate())
	require.Error(t, kernel.Role(42).Validate())
}

func TestNewActor(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := kernel.NewUUID()
		actor, err := kernel.NewActor(id, kernel.RoleDriver)
		require.NoError(t, err)
		require.NoError(t, actor.Validate())
		assert.True(t, actor.ID().IsEqual(id))
		assert.Equal(t, kernel.RoleDriver, actor.Role())
	})

	t.Run("zero id rejected", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, kernel.RoleCustomer)
		require.Error(t, err)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleUnknown)
		require.Error(t, err)
	})

	t.Run("zero value actor fails validation", func(t *testing.T) {
		var actor kernel.Actor
		require.ErrorIs(t, actor.Validate(), kernel.ErrActorIsNotConstructed)
	})
}
