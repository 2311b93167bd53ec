package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPercentOffValidation(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		wantErr error
	}{
		{name: "zero percent", percent: 0},
		{name: "full discount", percent: 100},
		{name: "negative", percent: -1, wantErr: ErrInvalidPercent},
		{name: "above hundred", percent: 100.5, wantErr: ErrInvalidPercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			promo, err := NewPercentOff(tt.percent)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, promo)
		})
	}
}

func TestPercentOffApply(t *testing.T) {
	noDiscount, err := NewPercentOff(0)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, noDiscount.Apply(10, 5), 1e-9)

	free, err := NewPercentOff(100)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, free.Apply(10, 5), 1e-9)

	thirty, err := NewPercentOff(30)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, thirty.Apply(10, 10), 1e-9)
	assert.InDelta(t, 0.0, thirty.Apply(10, 0), 1e-9)
}

func TestSecondUnitHalfPriceApply(t *testing.T) {
	promo := NewSecondUnitHalfPrice()

	tests := []struct {
		quantity int
		want     float64
	}{
		{quantity: 0, want: 0},
		{quantity: 1, want: 10},
		{quantity: 2, want: 15},
		{quantity: 3, want: 25},
		{quantity: 4, want: 30},
		{quantity: 5, want: 40},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, promo.Apply(10, tt.quantity), 1e-9, "quantity %d", tt.quantity)
	}
}

func TestEveryThirdFreeApply(t *testing.T) {
	promo := NewEveryThirdFree()

	tests := []struct {
		quantity int
		want     float64
	}{
		{quantity: 0, want: 0},
		{quantity: 1, want: 10},
		{quantity: 2, want: 20},
		{quantity: 3, want: 20},
		{quantity: 4, want: 30},
		{quantity: 5, want: 40},
		{quantity: 6, want: 40},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, promo.Apply(10, tt.quantity), 1e-9, "quantity %d", tt.quantity)
	}
}

// Charges never decrease with quantity and never exceed the undiscounted
// price, for every rule.
func TestPromotionsAreMonotonicAndBounded(t *testing.T) {
	thirty, err := NewPercentOff(30)
	require.NoError(t, err)
	promos := []Promotion{thirty, NewSecondUnitHalfPrice(), NewEveryThirdFree()}

	const price = 7.5
	for _, promo := range promos {
		prev := 0.0
		for q := 0; q <= 50; q++ {
			charged := promo.Apply(price, q)
			assert.GreaterOrEqual(t, charged, prev, "%s at quantity %d", promo.Name(), q)
			assert.LessOrEqual(t, charged, price*float64(q)+1e-9, "%s at quantity %d", promo.Name(), q)
			prev = charged
		}
	}
}
