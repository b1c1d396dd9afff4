// Package dto defines the JSON shapes of the HTTP API.
package dto

import (
	"fmt"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// ValidationError reports an invalid request field.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns "field: message".
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// CartLineRequest is one cart line as sent by the shop.
//
// @Description Cart line. base_price and category_ids override catalog data when present.
type CartLineRequest struct {
	// Key identifies the line within the cart
	Key         string           `json:"key" binding:"required" example:"c4ca4238a0b923820dcc509a6f75849b"`
	ProductID   int64            `json:"product_id" binding:"required,gt=0" example:"5035"`
	VariationID int64            `json:"variation_id,omitempty" binding:"gte=0" example:"0"`
	Quantity    int              `json:"quantity" binding:"gte=0,lte=1000000" example:"3"`
	BasePrice   *decimal.Decimal `json:"base_price,omitempty" swaggertype:"string" example:"100"`
	CategoryIDs []int64          `json:"category_ids,omitempty" example:"60"`
} // @name CartLineRequest

// PriceCartRequest is the body of POST /api/cart/price.
//
// @Description Cart to run through the pricing hooks
type PriceCartRequest struct {
	Items []CartLineRequest `json:"items" binding:"required,min=1,dive"`
} // @name PriceCartRequest

// Validate checks line keys are unique and prices are not negative.
func (r *PriceCartRequest) Validate() error {
	return validateLines(r.Items, false)
}

// Lines converts the request into cart lines.
func (r *PriceCartRequest) Lines() []model.CartLine {
	return toLines(r.Items)
}

// CalculateRequest is the body of POST /api/calculate. Every line must carry its
// base price and categories; Rules, when set, replace the active configuration
// for this call only.
//
// @Description Stateless calculation over inline cart lines
type CalculateRequest struct {
	Items []CartLineRequest `json:"items" binding:"required,min=1,dive"`
	Rules *TierRulesRequest `json:"rules,omitempty"`
} // @name CalculateRequest

// Validate checks the lines and, when present, the rules.
func (r *CalculateRequest) Validate() error {
	if err := validateLines(r.Items, true); err != nil {
		return err
	}
	if r.Rules != nil {
		if _, err := r.Rules.ToRules(); err != nil {
			return err
		}
	}
	return nil
}

// Lines converts the request into cart lines.
func (r *CalculateRequest) Lines() []model.CartLine {
	return toLines(r.Items)
}

func validateLines(items []CartLineRequest, requireInline bool) error {
	if len(items) == 0 {
		return invalid("items", "at least one line is required")
	}
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		field := fmt.Sprintf("items[%d]", i)
		if it.Key == "" {
			return invalid(field+".key", "is required")
		}
		if _, dup := seen[it.Key]; dup {
			return invalid(field+".key", "duplicate key %q", it.Key)
		}
		seen[it.Key] = struct{}{}

		if it.ProductID <= 0 {
			return invalid(field+".product_id", "must be a positive integer")
		}
		if it.Quantity < 0 {
			return invalid(field+".quantity", "must not be negative")
		}
		if it.Quantity > model.MaxQuantityCeiling {
			return invalid(field+".quantity", "must not exceed %d", model.MaxQuantityCeiling)
		}
		if it.BasePrice != nil && it.BasePrice.IsNegative() {
			return invalid(field+".base_price", "must not be negative")
		}
		if requireInline && (it.BasePrice == nil || it.CategoryIDs == nil) {
			return invalid(field, "base_price and category_ids are required")
		}
	}
	return nil
}

func toLines(items []CartLineRequest) []model.CartLine {
	lines := make([]model.CartLine, len(items))
	for i, it := range items {
		lines[i] = model.CartLine{
			Key:         it.Key,
			ProductID:   it.ProductID,
			VariationID: it.VariationID,
			Quantity:    it.Quantity,
			BasePrice:   it.BasePrice,
			CategoryIDs: it.CategoryIDs,
		}
	}
	return lines
}

// TierRequest is one threshold/amount pair.
type TierRequest struct {
	Threshold int             `json:"threshold" example:"3"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"20"`
} // @name TierRequest

// TierRulesRequest describes a tier configuration.
//
// @Description Tier table, discount mode and eligible categories
type TierRulesRequest struct {
	Tiers               []TierRequest `json:"tiers" binding:"required,min=1"`
	Mode                string        `json:"mode" example:"flat" enums:"flat,percent"`
	CategoryIDs         []int64       `json:"category_ids" binding:"required,min=1" example:"60"`
	NegativePricePolicy string        `json:"negative_price_policy,omitempty" example:"clamp" enums:"clamp,allow"`
} // @name TierRulesRequest

// ToRules validates the request and converts it into rules. An empty mode means flat.
// Errors are *model.ConfigurationError.
func (r *TierRulesRequest) ToRules() (model.Rules, error) {
	mode := model.ModeFlat
	var err error
	if r.Mode != "" {
		mode, err = model.ParseMode(r.Mode)
	}
	if err != nil {
		return model.Rules{}, err
	}
	policy, err := model.ParseNegativePricePolicy(r.NegativePricePolicy)
	if err != nil {
		return model.Rules{}, err
	}

	tiers := make([]model.Tier, len(r.Tiers))
	for i, t := range r.Tiers {
		tiers[i] = model.Tier{Threshold: t.Threshold, Amount: t.Amount}
	}
	rules := model.Rules{Tiers: tiers, Mode: mode, CategoryIDs: r.CategoryIDs, NegativePrice: policy}
	if err := rules.Validate(); err != nil {
		return model.Rules{}, err
	}
	return rules, nil
}

// UpdateTiersRequest is the body of PUT /api/tiers.
type UpdateTiersRequest struct {
	TierRulesRequest
	// CreatedBy is recorded on the stored configuration
	CreatedBy string `json:"created_by,omitempty" example:"ops"`
} // @name UpdateTiersRequest

// UpsertProductRequest is the body of PUT /api/products/:id.
//
// @Description Catalog product. Variations need a parent_id; their eligibility follows the parent.
type UpsertProductRequest struct {
	ParentID    int64            `json:"parent_id,omitempty" binding:"gte=0" example:"0"`
	Type        string           `json:"type,omitempty" example:"simple" enums:"simple,variable,variation"`
	Name        string           `json:"name,omitempty" example:"Block of cheese"`
	Price       *decimal.Decimal `json:"price" swaggertype:"string" example:"100"`
	CategoryIDs []int64          `json:"category_ids,omitempty" example:"60"`
} // @name UpsertProductRequest

// Validate checks the price and the product type.
func (r *UpsertProductRequest) Validate() error {
	if r.Price == nil {
		return invalid("price", "is required")
	}
	if r.Price.IsNegative() {
		return invalid("price", "must not be negative")
	}
	switch model.ProductType(r.Type) {
	case "", model.ProductTypeSimple, model.ProductTypeVariable:
		if r.ParentID != 0 {
			return invalid("parent_id", "only variations have a parent")
		}
	case model.ProductTypeVariation:
		if r.ParentID == 0 {
			return invalid("parent_id", "is required for variations")
		}
	default:
		return invalid("type", "unsupported product type %q", r.Type)
	}
	return nil
}

// Product converts the request into a product with the given id.
func (r *UpsertProductRequest) Product(id int64) model.Product {
	typ := model.ProductType(r.Type)
	if typ == "" {
		typ = model.ProductTypeSimple
	}
	return model.Product{
		ID:          id,
		ParentID:    r.ParentID,
		Type:        typ,
		Name:        r.Name,
		Price:       *r.Price,
		CategoryIDs: r.CategoryIDs,
	}
}
