package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/shopspring/decimal"
)

// AveragePricePlaces is the number of decimal places the average unit price is rounded to.
const AveragePricePlaces = 4

// CartLine is a raw line as supplied by the cart provider, before catalog resolution.
type CartLine struct {
	Key         string
	ProductID   int64
	VariationID int64
	Quantity    int
	// BasePrice and CategoryIDs override catalog data when set.
	BasePrice   *decimal.Decimal
	CategoryIDs []int64
}

// LineItem is a resolved cart line ready for pricing.
//
// @Description Cart line item with resolved base price and categories
type LineItem struct {
	// Key identifies the line within the cart
	Key string `json:"key" example:"c4ca4238a0b923820dcc509a6f75849b"`
	// ProductID is the purchased product or variation
	ProductID int64 `json:"product_id" example:"5035"`
	// ParentID is the parent product for variations, 0 otherwise
	ParentID int64 `json:"parent_id,omitempty" example:"0"`
	// Quantity is the number of units on the line
	Quantity int `json:"quantity" example:"3"`
	// BasePrice is the undiscounted unit price
	BasePrice decimal.Decimal `json:"base_price" swaggertype:"string" example:"100"`
	// CategoryIDs used for eligibility (parent categories for variations)
	CategoryIDs []int64 `json:"category_ids" example:"60"`
}

// Cart is an ordered snapshot of line items.
type Cart struct {
	Items []LineItem `json:"items"`
}

// IsEmpty reports whether the cart holds no units.
func (c Cart) IsEmpty() bool {
	for _, it := range c.Items {
		if it.Quantity > 0 {
			return false
		}
	}
	return true
}

// Fingerprint returns a stable digest of the snapshot, used to detect re-entry on the same cart.
func (c Cart) Fingerprint() string {
	h := sha256.New()
	for _, it := range c.Items {
		h.Write([]byte(it.Key))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatInt(it.ProductID, 10)))
		h.Write([]byte{0})
		h.Write([]byte(strconv.FormatInt(it.ParentID, 10)))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(it.Quantity)))
		h.Write([]byte{0})
		h.Write([]byte(it.BasePrice.String()))
		for _, id := range it.CategoryIDs {
			h.Write([]byte{','})
			h.Write([]byte(strconv.FormatInt(id, 10)))
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// PricedItem is a line item after tier discount distribution.
//
// @Description Line item with its per-unit adjusted prices
type PricedItem struct {
	LineItem
	// Eligible is true when the item belongs to a discounted category
	Eligible bool `json:"eligible"`
	// Adjusted is true when a tier matched and the item carries adjusted prices
	Adjusted bool `json:"adjusted"`
	// AdjustedPrices holds one entry per unit
	AdjustedPrices []decimal.Decimal `json:"adjusted_prices,omitempty" swaggertype:"array,string"`
	// DiscountedUnits is how many leading entries carry the discounted price
	DiscountedUnits int `json:"discounted_units"`
	// DiscountedUnitPrice is the unit price applied to discounted units
	DiscountedUnitPrice decimal.Decimal `json:"discounted_unit_price" swaggertype:"string" example:"80"`
	// GrandTotal is the sum of AdjustedPrices
	GrandTotal decimal.Decimal `json:"grand_total" swaggertype:"string" example:"240"`
	// AveragePrice is GrandTotal / Quantity rounded to four places, or the base price when not adjusted
	AveragePrice decimal.Decimal `json:"average_price" swaggertype:"string" example:"80"`
}

// EffectivePrice returns the unit price the cart should charge for this item.
func (p PricedItem) EffectivePrice() decimal.Decimal {
	if p.Adjusted {
		return p.AveragePrice
	}
	return p.BasePrice
}

// LineTotal returns the amount charged for the whole line.
func (p PricedItem) LineTotal() decimal.Decimal {
	if p.Adjusted {
		return p.GrandTotal
	}
	return p.BasePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// RemainingUnits returns the number of units left at base price.
func (p PricedItem) RemainingUnits() int {
	if !p.Adjusted {
		return p.Quantity
	}
	return p.Quantity - p.DiscountedUnits
}

// PricedCart is the result of running the calculator over a cart snapshot.
//
// @Description Cart after tiered discount distribution
type PricedCart struct {
	Items []PricedItem `json:"items"`
	// TotalEligibleQuantity is the sum of quantities over eligible items
	TotalEligibleQuantity int `json:"total_eligible_quantity" example:"5"`
	// MatchedTier is the tier applied, nil when no tier qualified
	MatchedTier *Tier `json:"matched_tier,omitempty"`
	// QuantityToDiscount is the number of units priced at the discounted rate
	QuantityToDiscount int `json:"quantity_to_discount" example:"3"`
	// FullPricedRemainder is the number of eligible units left at base price
	FullPricedRemainder int `json:"full_priced_remainder" example:"2"`
	// Subtotal is the cart value at base prices
	Subtotal decimal.Decimal `json:"subtotal" swaggertype:"string" example:"500"`
	// Total is the cart value after discounts
	Total decimal.Decimal `json:"total" swaggertype:"string" example:"440"`
	// Savings is Subtotal minus Total
	Savings decimal.Decimal `json:"savings" swaggertype:"string" example:"60"`
}

// Item returns the priced item with the given cart key.
func (c PricedCart) Item(key string) (PricedItem, bool) {
	for _, it := range c.Items {
		if it.Key == key {
			return it, true
		}
	}
	return PricedItem{}, false
}

// Snapshot returns the underlying cart with base prices, discarding adjustments.
func (c PricedCart) Snapshot() Cart {
	items := make([]LineItem, len(c.Items))
	for i, it := range c.Items {
		items[i] = it.LineItem
	}
	return Cart{Items: items}
}

// Unpriced returns a PricedCart that leaves every item at base price.
func Unpriced(cart Cart) PricedCart {
	out := PricedCart{Items: make([]PricedItem, len(cart.Items))}
	for i, it := range cart.Items {
		out.Items[i] = PricedItem{LineItem: it, AveragePrice: it.BasePrice}
	}
	out.computeTotals()
	return out
}

// WithTotals fills Subtotal, Total and Savings from the items.
func (c PricedCart) WithTotals() PricedCart {
	c.computeTotals()
	return c
}

func (c *PricedCart) computeTotals() {
	subtotal := decimal.Zero
	total := decimal.Zero
	for _, it := range c.Items {
		if it.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(it.BasePrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		total = total.Add(it.LineTotal())
	}
	c.Subtotal = subtotal
	c.Total = total
	c.Savings = subtotal.Sub(total)
}
