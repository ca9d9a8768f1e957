package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid amount", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("12.50")
		require.NoError(t, err)
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("rounds to two fraction digits", func(t *testing.T) {
		m, err := kernel.NewMoneyFromString("1.005")
		require.NoError(t, err)
		assert.Equal(t, "1.01", m.String())
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("-0.01")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := kernel.NewMoneyFromString("twelve")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	five, err := kernel.NewMoneyFromString("5.00")
	require.NoError(t, err)
	three, err := kernel.NewMoneyFromString("3.00")
	require.NoError(t, err)

	t.Run("MulInt", func(t *testing.T) {
		assert.Equal(t, "10.00", five.MulInt(2).String())
	})

	t.Run("Add", func(t *testing.T) {
		assert.Equal(t, "8.00", five.Add(three).String())
	})

	t.Run("no drift over repeated additions", func(t *testing.T) {
		tenth, err := kernel.NewMoneyFromString("0.10")
		require.NoError(t, err)

		var sum kernel.Money
		for range 100 {
			sum = sum.Add(tenth)
		}
		assert.Equal(t, "10.00", sum.String())
	})
}

func TestMoney_Cents(t *testing.T) {
	m, err := kernel.NewMoneyFromString("13.99")
	require.NoError(t, err)
	assert.Equal(t, int64(1399), m.Cents())

	back, err := kernel.NewMoneyFromCents(1399)
	require.NoError(t, err)
	assert.True(t, m.IsEqual(back))
}

func TestMoney_ZeroValue(t *testing.T) {
	var m kernel.Money
	assert.True(t, m.IsZero())
	assert.Equal(t, "0.00", m.String())
}
