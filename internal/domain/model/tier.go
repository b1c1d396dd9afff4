// Package model defines the core domain entities for the tier pricing service.
package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects how a tier amount is applied to a unit price.
type Mode string

const (
	// ModeFlat subtracts the tier amount from the unit price.
	ModeFlat Mode = "flat"
	// ModePercent subtracts a percentage of the unit price.
	ModePercent Mode = "percent"
)

// ParseMode converts a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFlat:
		return ModeFlat, nil
	case ModePercent:
		return ModePercent, nil
	default:
		return "", &ConfigurationError{Field: "mode", Message: fmt.Sprintf("unsupported mode %q", s)}
	}
}

// NegativePricePolicy decides what happens when a flat discount exceeds the base price.
type NegativePricePolicy string

const (
	// NegativePriceClamp floors adjusted unit prices at zero.
	NegativePriceClamp NegativePricePolicy = "clamp"
	// NegativePriceAllow keeps negative adjusted unit prices as computed.
	NegativePriceAllow NegativePricePolicy = "allow"
)

// ParseNegativePricePolicy converts a string into a NegativePricePolicy.
// An empty string yields the clamp policy.
func ParseNegativePricePolicy(s string) (NegativePricePolicy, error) {
	switch NegativePricePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", NegativePriceClamp:
		return NegativePriceClamp, nil
	case NegativePriceAllow:
		return NegativePriceAllow, nil
	default:
		return "", &ConfigurationError{Field: "negative_price_policy", Message: fmt.Sprintf("unsupported policy %q", s)}
	}
}

// ConfigurationError reports an invalid discount configuration.
type ConfigurationError struct {
	Field   string
	Message string
}

// Error returns the error message for ConfigurationError.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Field + ": " + e.Message
}

var hundred = decimal.NewFromInt(100)

// Tier maps a quantity threshold to a discount amount.
//
// @Description Quantity threshold and the discount it unlocks
type Tier struct {
	// Threshold is the minimum eligible quantity for this tier
	Threshold int `json:"threshold" example:"3"`
	// Amount is a flat currency amount or a percentage, depending on the mode
	Amount decimal.Decimal `json:"amount" swaggertype:"string" example:"20"`
}

// Fraction returns the share of the unit price removed by this tier in percent mode.
// Values greater than 1 are read as whole percentages.
func (t Tier) Fraction() decimal.Decimal {
	if t.Amount.GreaterThan(decimal.NewFromInt(1)) {
		return t.Amount.Div(hundred)
	}
	return t.Amount
}

// Rules is the immutable discount configuration a calculator runs with.
//
// @Description Tier table, eligible categories and adjustment mode
type Rules struct {
	Tiers         []Tier              `json:"tiers"`
	Mode          Mode                `json:"mode" example:"flat"`
	CategoryIDs   []int64             `json:"category_ids" example:"60"`
	NegativePrice NegativePricePolicy `json:"negative_price_policy,omitempty" example:"clamp"`
}

// Validate checks the rules and returns a *ConfigurationError when they cannot be used.
func (r Rules) Validate() error {
	if len(r.Tiers) == 0 {
		return &ConfigurationError{Field: "tiers", Message: "at least one tier is required"}
	}
	if r.Mode != ModeFlat && r.Mode != ModePercent {
		return &ConfigurationError{Field: "mode", Message: fmt.Sprintf("unsupported mode %q", r.Mode)}
	}
	if _, err := ParseNegativePricePolicy(string(r.NegativePrice)); err != nil {
		return err
	}
	if len(r.CategoryIDs) == 0 {
		return &ConfigurationError{Field: "category_ids", Message: "at least one category is required"}
	}

	seen := make(map[int]struct{}, len(r.Tiers))
	for _, t := range r.Tiers {
		if t.Threshold <= 0 {
			return &ConfigurationError{Field: "tiers", Message: fmt.Sprintf("threshold %d must be positive", t.Threshold)}
		}
		if _, dup := seen[t.Threshold]; dup {
			return &ConfigurationError{Field: "tiers", Message: fmt.Sprintf("duplicate threshold %d", t.Threshold)}
		}
		seen[t.Threshold] = struct{}{}

		if !t.Amount.IsPositive() {
			return &ConfigurationError{Field: "tiers", Message: fmt.Sprintf("amount for threshold %d must be positive", t.Threshold)}
		}
		if r.Mode == ModePercent && t.Fraction().GreaterThan(decimal.NewFromInt(1)) {
			return &ConfigurationError{Field: "tiers", Message: fmt.Sprintf("percentage for threshold %d exceeds 100", t.Threshold)}
		}
	}
	return nil
}

// Normalized returns a copy with tiers sorted by descending threshold,
// categories de-duplicated and the default negative price policy filled in.
func (r Rules) Normalized() Rules {
	out := Rules{
		Tiers:         make([]Tier, len(r.Tiers)),
		Mode:          r.Mode,
		NegativePrice: r.NegativePrice,
	}
	copy(out.Tiers, r.Tiers)
	sort.SliceStable(out.Tiers, func(i, j int) bool {
		return out.Tiers[i].Threshold > out.Tiers[j].Threshold
	})

	seen := make(map[int64]struct{}, len(r.CategoryIDs))
	for _, id := range r.CategoryIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out.CategoryIDs = append(out.CategoryIDs, id)
	}

	if out.NegativePrice == "" {
		out.NegativePrice = NegativePriceClamp
	}
	return out
}

// Match returns the tier with the largest threshold not exceeding quantity.
// Tiers must already be sorted by descending threshold.
func (r Rules) Match(quantity int) (Tier, bool) {
	if quantity <= 0 {
		return Tier{}, false
	}
	for _, t := range r.Tiers {
		if t.Threshold <= quantity {
			return t, true
		}
	}
	return Tier{}, false
}

// IsEligible reports whether any of the categories is in the eligibility set.
func (r Rules) IsEligible(categoryIDs []int64) bool {
	for _, c := range categoryIDs {
		for _, e := range r.CategoryIDs {
			if c == e {
				return true
			}
		}
	}
	return false
}

// DiscountedPrice applies the tier to a single unit price.
func (r Rules) DiscountedPrice(base decimal.Decimal, tier Tier) decimal.Decimal {
	var price decimal.Decimal
	switch r.Mode {
	case ModePercent:
		price = base.Sub(base.Mul(tier.Fraction()))
	default:
		price = base.Sub(tier.Amount)
	}

	if price.IsNegative() && r.NegativePrice != NegativePriceAllow {
		return decimal.Zero
	}
	return price
}

// ParseTiers parses a "threshold:amount" list such as "2:25,3:50".
func ParseTiers(s string) ([]Tier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &ConfigurationError{Field: "tiers", Message: "tier table is empty"}
	}

	parts := strings.Split(s, ",")
	tiers := make([]Tier, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		threshold, amount, ok := strings.Cut(p, ":")
		if !ok {
			return nil, &ConfigurationError{Field: "tiers", Message: fmt.Sprintf("malformed tier %q, want threshold:amount", p)}
		}
		qty, err := strconv.Atoi(strings.TrimSpace(threshold))
		if err != nil {
			return nil, &ConfigurationError{Field: "tiers", Message: fmt.Sprintf("invalid threshold in %q", p)}
		}
		value, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, &ConfigurationError{Field: "tiers", Message: fmt.Sprintf("invalid amount in %q", p)}
		}
		tiers = append(tiers, Tier{Threshold: qty, Amount: value})
	}

	if len(tiers) == 0 {
		return nil, &ConfigurationError{Field: "tiers", Message: "tier table is empty"}
	}
	return tiers, nil
}
