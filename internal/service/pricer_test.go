package service

import (
	"context"
	"testing"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartPricer_Price(t *testing.T) {
	pricer := NewCartPricer(newCalculator(t), shopCatalog())

	result, err := pricer.Price(context.Background(), []model.CartLine{
		{Key: "simple", ProductID: 10, Quantity: 2},
		{Key: "variation", ProductID: 20, VariationID: 21, Quantity: 2},
		{Key: "other", ProductID: 30, Quantity: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalEligibleQuantity)
	require.NotNil(t, result.MatchedTier)
	assert.Equal(t, 3, result.QuantityToDiscount)
	assert.Equal(t, 1, result.FullPricedRemainder)

	simple, _ := result.Item("simple")
	assertPrices(t, []string{"80", "80"}, simple.AdjustedPrices)

	variation, _ := result.Item("variation")
	assertPrices(t, []string{"25", "45"}, variation.AdjustedPrices)
	assert.True(t, dec("35").Equal(variation.AveragePrice))

	other, _ := result.Item("other")
	assert.False(t, other.Eligible)
	assert.Nil(t, other.AdjustedPrices)
}

func TestCartPricer_PriceWithRules(t *testing.T) {
	pricer := NewCartPricer(newCalculator(t), shopCatalog())
	lines := []model.CartLine{{Key: "a", ProductID: 10, Quantity: 5}}

	result, err := pricer.PriceWithRules(context.Background(), lines, percentRules())
	require.NoError(t, err)
	item, _ := result.Item("a")
	assertPrices(t, []string{"50", "50", "50", "100", "100"}, item.AdjustedPrices)
	assert.True(t, dec("70").Equal(item.AveragePrice))

	_, err = pricer.PriceWithRules(context.Background(), lines, model.Rules{Mode: model.ModeFlat})
	var cfgErr *model.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)

	assert.Equal(t, DefaultRules().Mode, pricer.Rules().Mode)
}

func TestCartPricer_ResolutionError(t *testing.T) {
	pricer := NewCartPricer(newCalculator(t), nil)

	_, err := pricer.Price(context.Background(), []model.CartLine{{Key: "a", ProductID: 10, Quantity: 1}})
	assert.ErrorIs(t, err, ErrCatalogNotConfigured)
}

func TestCartPricer_QuantityLimits(t *testing.T) {
	pricer := NewCartPricer(newCalculator(t), shopCatalog(), WithQuantityLimits(model.QuantityLimits{MaxLine: 3}))

	_, err := pricer.Price(context.Background(), []model.CartLine{{Key: "a", ProductID: 10, Quantity: 4}})
	var lerr *model.QuantityLimitError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 3, lerr.Limit)

	_, err = pricer.Price(context.Background(), []model.CartLine{{Key: "a", ProductID: 10, Quantity: 3}})
	assert.NoError(t, err)
}
