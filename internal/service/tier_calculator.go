package service

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/logger"
	"github.com/guttosm/tier-pricing-service/internal/metrics"
	"github.com/guttosm/tier-pricing-service/internal/service/cache"
	"github.com/shopspring/decimal"
)

// DefaultRules returns the out-of-the-box configuration: one flat tier of 20 off
// per unit once three units of category 60 are in the cart.
func DefaultRules() model.Rules {
	return model.Rules{
		Tiers:         []model.Tier{{Threshold: 3, Amount: decimal.NewFromInt(20)}},
		Mode:          model.ModeFlat,
		CategoryIDs:   []int64{60},
		NegativePrice: model.NegativePriceClamp,
	}
}

// TierCalculator prices a cart snapshot against a tier table.
type TierCalculator interface {
	Calculate(cart model.Cart) model.PricedCart
	CalculateWithRules(cart model.Cart, rules model.Rules) (model.PricedCart, error)
	Rules() model.Rules
	UpdateRules(rules model.Rules) error
	// InvalidateCache drops every cached result.
	InvalidateCache()
}

// Option configures a TierCalculatorService.
type Option func(*TierCalculatorService)

// TierCalculatorService implements TierCalculator.
//
// Pricing never mutates its input: the result is derived from base prices only,
// so running it twice over the same snapshot yields the same prices.
// Results served from the cache share their slices and must be treated as read-only.
type TierCalculatorService struct {
	rules    model.Rules
	active   atomic.Pointer[compiledRules]
	cache    cache.Cache
	limits   model.QuantityLimits
	observer func(model.PricedCart)
}

type compiledRules struct {
	rules  model.Rules
	digest string
}

// NewTierCalculatorService builds a calculator. Without WithRules it uses DefaultRules.
// Invalid rules yield a *model.ConfigurationError.
func NewTierCalculatorService(opts ...Option) (*TierCalculatorService, error) {
	s := &TierCalculatorService{rules: DefaultRules(), limits: model.DefaultQuantityLimits()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.UpdateRules(s.rules); err != nil {
		return nil, err
	}
	return s, nil
}

// WithRules sets the tier table, eligibility set and mode.
func WithRules(rules model.Rules) Option {
	return func(s *TierCalculatorService) {
		s.rules = rules
	}
}

// WithCache enables result caching with the given capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *TierCalculatorService) {
		if capacity > 0 {
			s.cache = newTTLCache(capacity, ttl)
		}
	}
}

// WithShardedCache enables a sharded result cache. One shard or fewer falls back to WithCache.
func WithShardedCache(capacity int, ttl time.Duration, shards int) Option {
	return func(s *TierCalculatorService) {
		if capacity <= 0 {
			return
		}
		if shards <= 1 {
			s.cache = newTTLCache(capacity, ttl)
			return
		}
		s.cache = NewShardedCache(capacity, ttl, shards)
	}
}

// WithMaxQuantities bounds the line and cart quantities the calculator accepts.
// Unset fields keep the defaults.
func WithMaxQuantities(limits model.QuantityLimits) Option {
	return func(s *TierCalculatorService) {
		s.limits = limits.OrDefault()
	}
}

// WithCacheInterface injects a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *TierCalculatorService) {
		s.cache = c
	}
}

// WithObserver registers a callback invoked with every freshly computed result.
func WithObserver(fn func(model.PricedCart)) Option {
	return func(s *TierCalculatorService) {
		s.observer = fn
	}
}

// Rules returns the normalized rules in effect.
func (s *TierCalculatorService) Rules() model.Rules {
	return s.active.Load().rules
}

// UpdateRules validates and swaps in new rules, then clears the cache.
func (s *TierCalculatorService) UpdateRules(rules model.Rules) error {
	compiled, err := compile(rules)
	if err != nil {
		return err
	}
	s.active.Store(compiled)
	s.InvalidateCache()
	return nil
}

// Calculate prices the cart with the configured rules. A cart over the quantity
// limits is returned unpriced.
func (s *TierCalculatorService) Calculate(cart model.Cart) model.PricedCart {
	if err := s.limits.Check(cart.Items); err != nil {
		log := logger.Component("pricing")
		log.Warn().Err(err).Msg("Cart over quantity limits left unpriced")
		return model.Unpriced(cart)
	}
	return s.calculate(cart, s.active.Load())
}

// CalculateWithRules prices the cart with ad-hoc rules, leaving the configured ones untouched.
// A cart over the quantity limits yields a *model.QuantityLimitError.
func (s *TierCalculatorService) CalculateWithRules(cart model.Cart, rules model.Rules) (model.PricedCart, error) {
	if err := s.limits.Check(cart.Items); err != nil {
		return model.PricedCart{}, err
	}
	compiled, err := compile(rules)
	if err != nil {
		return model.PricedCart{}, err
	}
	return s.calculate(cart, compiled), nil
}

// InvalidateCache drops every cached result.
func (s *TierCalculatorService) InvalidateCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Stop releases the cache's background resources.
func (s *TierCalculatorService) Stop() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

func compile(rules model.Rules) (*compiledRules, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	normalized := rules.Normalized()
	return &compiledRules{rules: normalized, digest: rulesDigest(normalized)}, nil
}

func rulesDigest(r model.Rules) string {
	var b strings.Builder
	b.WriteString(string(r.Mode))
	b.WriteByte('|')
	b.WriteString(string(r.NegativePrice))
	for _, t := range r.Tiers {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(t.Threshold))
		b.WriteByte(':')
		b.WriteString(t.Amount.String())
	}
	b.WriteByte('|')
	for _, id := range r.CategoryIDs {
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte(',')
	}
	return b.String()
}

func (s *TierCalculatorService) calculate(cart model.Cart, compiled *compiledRules) model.PricedCart {
	if cart.IsEmpty() {
		return model.Unpriced(cart)
	}

	var key string
	if s.cache != nil {
		key = compiled.digest + "#" + cart.Fingerprint()
		if result, ok := s.cache.Get(key); ok {
			return result
		}
	}

	result := distribute(cart, compiled.rules)
	threshold := 0
	if result.MatchedTier != nil {
		threshold = result.MatchedTier.Threshold
	}
	metrics.RecordTierMatch(threshold, result.QuantityToDiscount)
	if s.observer != nil {
		s.observer(result)
	}

	if s.cache != nil {
		s.cache.Set(key, result)
		if m, ok := s.cache.(cache.CacheWithMetrics); ok {
			snapshot := m.Metrics()
			metrics.UpdateCacheMetrics(snapshot.Size, snapshot.Capacity)
		}
	}
	return result
}

// distribute spreads the matched tier over eligible items in cart order.
// rules must be normalized and quantities within limits.
func distribute(cart model.Cart, rules model.Rules) model.PricedCart {
	out := model.PricedCart{Items: make([]model.PricedItem, len(cart.Items))}

	total := 0
	for i, it := range cart.Items {
		item := model.PricedItem{LineItem: it, AveragePrice: it.BasePrice}
		if it.Quantity > 0 && rules.IsEligible(it.CategoryIDs) {
			item.Eligible = true
			total += it.Quantity
		}
		out.Items[i] = item
	}
	out.TotalEligibleQuantity = total

	tier, ok := rules.Match(total)
	if !ok {
		return out.WithTotals()
	}

	matched := tier
	out.MatchedTier = &matched
	out.FullPricedRemainder = total % tier.Threshold
	out.QuantityToDiscount = total - out.FullPricedRemainder

	remaining := out.QuantityToDiscount
	for i := range out.Items {
		item := &out.Items[i]
		if !item.Eligible {
			continue
		}

		discounted := rules.DiscountedPrice(item.BasePrice, tier)
		units := remaining
		if units > item.Quantity {
			units = item.Quantity
		}
		remaining -= units

		prices := make([]decimal.Decimal, item.Quantity)
		grand := decimal.Zero
		for u := range prices {
			if u < units {
				prices[u] = discounted
			} else {
				prices[u] = item.BasePrice
			}
			grand = grand.Add(prices[u])
		}

		item.Adjusted = true
		item.AdjustedPrices = prices
		item.DiscountedUnits = units
		item.DiscountedUnitPrice = discounted
		item.GrandTotal = grand
		item.AveragePrice = grand.DivRound(decimal.NewFromInt(int64(item.Quantity)), model.AveragePricePlaces)
	}

	return out.WithTotals()
}
