package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPricer struct {
	inner Pricer
	calls int
	err   error
}

func (p *countingPricer) Price(ctx context.Context, lines []model.CartLine) (model.PricedCart, error) {
	p.calls++
	if p.err != nil {
		return model.PricedCart{}, p.err
	}
	return p.inner.Price(ctx, lines)
}

type plainRenderer struct{}

func (plainRenderer) BreakdownHTML(item model.PricedItem) string {
	parts := make([]string, 0, 2)
	parts = append(parts, fmt.Sprintf("%s x %d", item.DiscountedUnitPrice, item.DiscountedUnits))
	if r := item.RemainingUnits(); r > 0 {
		parts = append(parts, fmt.Sprintf("%s x %d", item.BasePrice, r))
	}
	return strings.Join(parts, "<br />")
}

func cheeseLines(qty int) []model.CartLine {
	return []model.CartLine{
		{Key: "cheese", ProductID: 10, Quantity: qty},
		{Key: "bread", ProductID: 30, Quantity: 1},
	}
}

func newSession(t *testing.T, guard GuardPolicy) (*Session, *countingPricer) {
	t.Helper()
	pricer := &countingPricer{inner: NewCartPricer(newCalculator(t), shopCatalog())}
	return NewSession(pricer, plainRenderer{}, guard), pricer
}

func TestParseGuardPolicy(t *testing.T) {
	for in, want := range map[string]GuardPolicy{"": GuardOnce, "once": GuardOnce, "always": GuardAlways} {
		got, err := ParseGuardPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseGuardPolicy("sometimes")
	var cfgErr *model.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestSession_HookOrder(t *testing.T) {
	s, _ := newSession(t, GuardOnce)

	fallback := dec("100")
	assert.True(t, fallback.Equal(s.ItemPrice("cheese", fallback)), "no result before pre-pricing")

	_, err := s.PrePricing(context.Background(), cheeseLines(4))
	require.NoError(t, err)

	assert.True(t, dec("85").Equal(s.ItemPrice("cheese", fallback)))
	assert.Equal(t, "80 x 3<br />100 x 1", s.ItemPriceDisplay("cheese", "$100.00"))

	breadPrice := dec("8")
	assert.True(t, breadPrice.Equal(s.ItemPrice("bread", breadPrice)))
	assert.Equal(t, "$8.00", s.ItemPriceDisplay("bread", "$8.00"))
	assert.Equal(t, "fallback", s.ItemPriceDisplay("unknown", "fallback"))
}

func TestSession_BelowThresholdKeepsFallbacks(t *testing.T) {
	s, _ := newSession(t, GuardOnce)
	_, err := s.PrePricing(context.Background(), cheeseLines(2))
	require.NoError(t, err)

	assert.True(t, dec("100").Equal(s.ItemPrice("cheese", dec("100"))))
	assert.Equal(t, "$100.00", s.ItemPriceDisplay("cheese", "$100.00"))
}

func TestSession_GuardPolicies(t *testing.T) {
	ctx := context.Background()

	t.Run("once prices a snapshot a single time", func(t *testing.T) {
		s, pricer := newSession(t, GuardOnce)

		first, err := s.PrePricing(ctx, cheeseLines(3))
		require.NoError(t, err)
		second, err := s.PrePricing(ctx, cheeseLines(3))
		require.NoError(t, err)

		assert.Equal(t, 1, pricer.calls)
		assert.Equal(t, 1, s.Runs())
		assert.True(t, first.Total.Equal(second.Total))
	})

	t.Run("once reprices a changed cart", func(t *testing.T) {
		s, pricer := newSession(t, GuardOnce)

		_, err := s.PrePricing(ctx, cheeseLines(3))
		require.NoError(t, err)
		changed, err := s.PrePricing(ctx, cheeseLines(6))
		require.NoError(t, err)

		assert.Equal(t, 2, pricer.calls)
		item, _ := changed.Item("cheese")
		assert.Equal(t, 6, item.DiscountedUnits)
	})

	t.Run("always recomputes without compounding", func(t *testing.T) {
		s, pricer := newSession(t, GuardAlways)

		var totals []decimal.Decimal
		for i := 0; i < 3; i++ {
			result, err := s.PrePricing(ctx, cheeseLines(3))
			require.NoError(t, err)
			totals = append(totals, result.Total)
		}

		assert.Equal(t, 3, pricer.calls)
		for _, total := range totals {
			assert.True(t, dec("248").Equal(total), "total %s", total)
		}
		assert.True(t, dec("80").Equal(s.ItemPrice("cheese", dec("100"))))
	})
}

func TestSession_PricingErrorKeepsPreviousResult(t *testing.T) {
	s, pricer := newSession(t, GuardAlways)
	ctx := context.Background()

	_, err := s.PrePricing(ctx, cheeseLines(3))
	require.NoError(t, err)

	pricer.err = errors.New("catalog down")
	_, err = s.PrePricing(ctx, cheeseLines(3))
	assert.Error(t, err)

	result, ok := s.Result()
	require.True(t, ok)
	assert.NotNil(t, result.MatchedTier)
}

func TestSession_NilRenderer(t *testing.T) {
	pricer := NewCartPricer(newCalculator(t), shopCatalog())
	s := NewSession(pricer, nil, "")

	_, err := s.PrePricing(context.Background(), cheeseLines(3))
	require.NoError(t, err)
	assert.Equal(t, "plain", s.ItemPriceDisplay("cheese", "plain"))
}
