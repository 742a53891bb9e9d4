package pricing

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

func ptr(f float64) *float64 { return &f }

func quote(bookmaker string, over, under float64) models.NormalizedMarket {
	return models.NormalizedMarket{Line: 2.5, Bookmaker: bookmaker, Over: ptr(over), Under: ptr(under)}
}

func TestPrice_RemovesMargin(t *testing.T) {
	pricer := NewPricer(zerolog.Nop())

	fair, err := pricer.Price(quote("pinnacle", 1.9, 1.95))
	require.NoError(t, err)

	assert.Equal(t, "pinnacle", fair.Bookmaker)
	assert.Equal(t, "0.0391", fair.Margin.String())
	assert.Equal(t, "1.974", fair.Over.String())
	assert.Equal(t, "2.026", fair.Under.String())
}

func TestPrice_NoMargin(t *testing.T) {
	pricer := NewPricer(zerolog.Nop())

	fair, err := pricer.Price(quote("bet365", 2.0, 2.0))
	require.NoError(t, err)

	assert.True(t, fair.Margin.IsZero())
	assert.True(t, fair.Over.Equal(decimal.NewFromInt(2)))
	assert.True(t, fair.Under.Equal(decimal.NewFromInt(2)))
}

func TestPrice_FairProbabilitiesSumToOne(t *testing.T) {
	pricer := NewPricer(zerolog.Nop())

	fair, err := pricer.Price(quote("pinnacle", 1.72, 2.2))
	require.NoError(t, err)

	one := decimal.NewFromInt(1)
	sum := one.Div(fair.Over).Add(one.Div(fair.Under))
	assert.True(t, sum.Sub(one).Abs().LessThan(decimal.NewFromFloat(0.001)), "sum %s", sum)
	assert.True(t, fair.Margin.IsPositive())
}

func TestPrice_InvalidQuotes(t *testing.T) {
	pricer := NewPricer(zerolog.Nop())

	tests := []struct {
		name   string
		market models.NormalizedMarket
	}{
		{"missing over", models.NormalizedMarket{Bookmaker: "pinnacle", Under: ptr(1.9)}},
		{"missing under", models.NormalizedMarket{Bookmaker: "pinnacle", Over: ptr(1.9)}},
		{"evens floor", quote("pinnacle", 1.0, 1.9)},
		{"zero price", quote("pinnacle", 1.9, 0)},
		{"negative price", quote("pinnacle", -2, 1.9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fair, err := pricer.Price(tt.market)
			assert.Error(t, err)
			assert.Nil(t, fair)
		})
	}
}

func TestPriceAll_SkipsUnpriceable(t *testing.T) {
	pricer := NewPricer(zerolog.Nop())

	best := map[string]models.NormalizedMarket{
		"goals_2.5":   quote("pinnacle", 1.9, 1.95),
		"cards_3.5":   quote("bet365", 2.1, 1.7),
		"corners_9.5": {Bookmaker: "bet365", Over: ptr(1.8)},
	}

	fair := pricer.PriceAll(best)

	require.Len(t, fair, 2)
	assert.Contains(t, fair, "goals_2.5")
	assert.Contains(t, fair, "cards_3.5")
	assert.Equal(t, "bet365", fair["cards_3.5"].Bookmaker)
}

func TestPriceAll_Empty(t *testing.T) {
	fair := NewPricer(zerolog.Nop()).PriceAll(nil)
	assert.NotNil(t, fair)
	assert.Empty(t, fair)
}
