package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromCents(t *testing.T) {
	assert.Equal(t, int64(1500), kernel.MoneyFromCents(1500).Cents())
	assert.True(t, kernel.MoneyFromCents(0).IsZero())
}

func TestMoneyFromDecimalString(t *testing.T) {
	testCases := []struct {
		input    string
		expected int64
	}{
		{"15", 1500},
		{"0", 0},
		{"9.99", 999},
		{"9.9", 990},
		{"0.05", 5},
		{" 12.50 ", 1250},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			m, err := kernel.MoneyFromDecimalString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, m.Cents())
		})
	}

	t.Run("rejects malformed amounts", func(t *testing.T) {
		for _, input := range []string{"", "abc", "-3", "-0.50", "+5", "1.234", "1.x"} {
			_, err := kernel.MoneyFromDecimalString(input)
			require.Error(t, err, "input %q should be rejected", input)
		}
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	price := kernel.MoneyFromCents(1000)
	fee := kernel.MoneyFromCents(1500)

	assert.Equal(t, int64(2000), price.Mul(2).Cents())
	assert.Equal(t, int64(3500), price.Mul(2).Add(fee).Cents())
	assert.Equal(t, int64(0), price.Mul(0).Cents())
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "35.00", kernel.MoneyFromCents(3500).String())
	assert.Equal(t, "0.05", kernel.MoneyFromCents(5).String())
}

func TestMoney_IsEqual(t *testing.T) {
	a := kernel.MoneyFromCents(100)
	b := kernel.MoneyFromCents(100)
	c := kernel.MoneyFromCents(101)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}
