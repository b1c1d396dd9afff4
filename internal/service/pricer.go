package service

import (
	"context"
	"time"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/metrics"
)

// Calculation outcomes reported to metrics.
const (
	calcStatusDiscounted = "discounted"
	calcStatusNoTier     = "no_tier"
	calcStatusError      = "error"
)

// CartPricer resolves raw cart lines through the catalog and prices them.
type CartPricer struct {
	calculator TierCalculator
	catalog    Catalog
	limits     model.QuantityLimits
}

// PricerOption configures a CartPricer.
type PricerOption func(*CartPricer)

// WithQuantityLimits bounds line and cart quantities. Unset fields keep the defaults.
func WithQuantityLimits(limits model.QuantityLimits) PricerOption {
	return func(p *CartPricer) {
		p.limits = limits.OrDefault()
	}
}

// NewCartPricer creates a pricer. catalog may be nil when every line carries inline data.
func NewCartPricer(calculator TierCalculator, catalog Catalog, opts ...PricerOption) *CartPricer {
	p := &CartPricer{calculator: calculator, catalog: catalog, limits: model.DefaultQuantityLimits()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Price prices lines with the calculator's configured rules.
func (p *CartPricer) Price(ctx context.Context, lines []model.CartLine) (model.PricedCart, error) {
	return p.price(ctx, lines, func(cart model.Cart) (model.PricedCart, error) {
		return p.calculator.Calculate(cart), nil
	})
}

// PriceWithRules prices lines with ad-hoc rules.
func (p *CartPricer) PriceWithRules(ctx context.Context, lines []model.CartLine, rules model.Rules) (model.PricedCart, error) {
	return p.price(ctx, lines, func(cart model.Cart) (model.PricedCart, error) {
		return p.calculator.CalculateWithRules(cart, rules)
	})
}

// Rules returns the calculator's active rules.
func (p *CartPricer) Rules() model.Rules {
	return p.calculator.Rules()
}

func (p *CartPricer) price(ctx context.Context, lines []model.CartLine, calc func(model.Cart) (model.PricedCart, error)) (model.PricedCart, error) {
	start := time.Now()

	cart, err := ResolveCart(ctx, p.catalog, p.limits, lines)
	if err != nil {
		metrics.RecordCalculation(time.Since(start), calcStatusError)
		return model.PricedCart{}, err
	}

	result, err := calc(cart)
	if err != nil {
		metrics.RecordCalculation(time.Since(start), calcStatusError)
		return model.PricedCart{}, err
	}

	status := calcStatusNoTier
	if result.MatchedTier != nil {
		status = calcStatusDiscounted
	}
	metrics.RecordCalculation(time.Since(start), status)
	return result, nil
}
