package service

import (
	"context"
	"fmt"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/metrics"
	"github.com/shopspring/decimal"
)

// GuardPolicy controls whether a session reprices a cart it has already priced.
type GuardPolicy string

const (
	// GuardOnce prices each distinct cart snapshot at most once per session.
	GuardOnce GuardPolicy = "once"
	// GuardAlways reprices on every pre-pricing call.
	GuardAlways GuardPolicy = "always"
)

// ParseGuardPolicy parses "once" or "always". Empty means GuardOnce.
func ParseGuardPolicy(s string) (GuardPolicy, error) {
	switch GuardPolicy(s) {
	case "", GuardOnce:
		return GuardOnce, nil
	case GuardAlways:
		return GuardAlways, nil
	}
	return "", &model.ConfigurationError{Field: "reentry_guard", Message: fmt.Sprintf("unsupported guard policy %q", s)}
}

// CartHooks are the extension points a host shop calls, in order, during one cart cycle.
type CartHooks interface {
	// PrePricing runs when the cart is loaded and computes the adjusted prices.
	PrePricing(ctx context.Context, lines []model.CartLine) (model.PricedCart, error)
	// ItemPrice returns the effective unit price for the line key, or fallback.
	ItemPrice(key string, fallback decimal.Decimal) decimal.Decimal
	// ItemPriceDisplay returns the price breakdown markup for the line key, or fallback.
	ItemPriceDisplay(key string, fallback string) string
}

// BreakdownRenderer renders the per-price breakdown of an adjusted item.
type BreakdownRenderer interface {
	BreakdownHTML(item model.PricedItem) string
}

// Pricer prices raw cart lines.
type Pricer interface {
	Price(ctx context.Context, lines []model.CartLine) (model.PricedCart, error)
}

// Session is the request-scoped implementation of CartHooks. It is not safe for concurrent use.
type Session struct {
	pricer   Pricer
	renderer BreakdownRenderer
	guard    GuardPolicy

	fingerprint string
	priced      *model.PricedCart
	runs        int
}

var _ CartHooks = (*Session)(nil)

// NewSession creates a session. A nil renderer disables breakdown markup.
func NewSession(pricer Pricer, renderer BreakdownRenderer, guard GuardPolicy) *Session {
	if guard == "" {
		guard = GuardOnce
	}
	return &Session{pricer: pricer, renderer: renderer, guard: guard}
}

// PrePricing prices lines. Under GuardOnce a repeated call with the same lines returns
// the earlier result without recomputing.
func (s *Session) PrePricing(ctx context.Context, lines []model.CartLine) (model.PricedCart, error) {
	fp := linesFingerprint(lines)
	if s.guard == GuardOnce && s.priced != nil && fp == s.fingerprint {
		metrics.RecordSessionGuard("skipped")
		return *s.priced, nil
	}

	result, err := s.pricer.Price(ctx, lines)
	if err != nil {
		return model.PricedCart{}, err
	}

	s.runs++
	s.fingerprint = fp
	s.priced = &result
	metrics.RecordSessionGuard("computed")
	return result, nil
}

// ItemPrice returns the rounded average unit price of an adjusted line.
func (s *Session) ItemPrice(key string, fallback decimal.Decimal) decimal.Decimal {
	item, ok := s.item(key)
	if !ok || !item.Adjusted {
		return fallback
	}
	return item.AveragePrice
}

// ItemPriceDisplay returns the breakdown of a line with discounted units.
func (s *Session) ItemPriceDisplay(key string, fallback string) string {
	item, ok := s.item(key)
	if !ok || item.DiscountedUnits == 0 || s.renderer == nil {
		return fallback
	}
	return s.renderer.BreakdownHTML(item)
}

// Runs reports how many times the session actually priced a cart.
func (s *Session) Runs() int {
	return s.runs
}

// Result returns the last priced cart, if any.
func (s *Session) Result() (model.PricedCart, bool) {
	if s.priced == nil {
		return model.PricedCart{}, false
	}
	return *s.priced, true
}

func (s *Session) item(key string) (model.PricedItem, bool) {
	if s.priced == nil {
		return model.PricedItem{}, false
	}
	return s.priced.Item(key)
}

func linesFingerprint(lines []model.CartLine) string {
	cart := model.Cart{Items: make([]model.LineItem, len(lines))}
	for i, l := range lines {
		item := model.LineItem{
			Key:         l.Key,
			ProductID:   l.ProductID,
			ParentID:    l.VariationID,
			Quantity:    l.Quantity,
			CategoryIDs: l.CategoryIDs,
		}
		if l.BasePrice != nil {
			item.BasePrice = *l.BasePrice
		} else {
			item.BasePrice = decimal.NewFromInt(-1)
		}
		cart.Items[i] = item
	}
	return cart.Fingerprint()
}
