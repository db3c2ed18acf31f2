package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tapcard/internal/errors"
	"tapcard/internal/model"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name     string
		base     int64
		fee      int64
		discount int64
		want     int64
	}{
		{"no discount", 25000, 4500, 0, 29500},
		{"exact discount zeroes order", 25000, 4500, 29500, 0},
		{"over discount clamps", 25000, 7000, 100000, 0},
		{"partial discount", 25000, 7000, 2000, 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(d(tt.base), d(tt.fee), d(tt.discount))
			assert.True(t, got.Equal(d(tt.want)), "got %s want %d", got, tt.want)
		})
	}
}

func TestComputeTotal_NeverNegative(t *testing.T) {
	for base := int64(0); base <= 50000; base += 12500 {
		for _, fee := range []int64{0, 4500, 7000} {
			for discount := int64(0); discount <= 120000; discount += 7500 {
				got := ComputeTotal(d(base), d(fee), d(discount))
				assert.False(t, got.IsNegative(), "base=%d fee=%d discount=%d", base, fee, discount)
			}
		}
	}
}

func TestDeliveryFee(t *testing.T) {
	fee, err := DeliveryFee(model.ZoneWithinRegion)
	require.NoError(t, err)
	assert.True(t, fee.Equal(d(4500)))

	fee, err = DeliveryFee(model.ZoneOutsideRegion)
	require.NoError(t, err)
	assert.True(t, fee.Equal(d(7000)))

	_, err = DeliveryFee("mars")
	assert.ErrorIs(t, err, errors.ErrUnknownZone)
}

func TestQuote(t *testing.T) {
	s, err := Quote(model.ZoneWithinRegion, nil)
	require.NoError(t, err)
	assert.True(t, s.Total.Equal(d(29500)))
	assert.Equal(t, Currency, s.Currency)

	full, err := FullDiscount(model.ZoneOutsideRegion)
	require.NoError(t, err)
	s, err = Quote(model.ZoneOutsideRegion, &model.AppliedDiscount{Code: "FREE", Amount: full})
	require.NoError(t, err)
	assert.True(t, s.Total.IsZero())
	assert.True(t, s.Discount.Equal(d(32000)))
}
