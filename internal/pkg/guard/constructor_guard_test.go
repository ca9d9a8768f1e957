package guard_test

import (
	"errors"
	"testing"

	"marketplace/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("thing must be created via NewThing")

	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		require.NoError(t, g.Validate(errNotConstructed))
	})

	t.Run("zero value guard fails with supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero value guard fails with default error when nil supplied", func(t *testing.T) {
		var g guard.ConstructorGuard
		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}
