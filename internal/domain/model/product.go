package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType distinguishes simple products from variations.
type ProductType string

const (
	// ProductTypeSimple is a standalone product.
	ProductTypeSimple ProductType = "simple"
	// ProductTypeVariable is a parent product that owns variations.
	ProductTypeVariable ProductType = "variable"
	// ProductTypeVariation is a purchasable variation of a variable product.
	ProductTypeVariation ProductType = "variation"
)

// Product is a catalog entry.
//
// @Description Catalog product with price and category membership
type Product struct {
	ID          int64           `json:"id" example:"5035"`
	ParentID    int64           `json:"parent_id,omitempty" example:"0"`
	Type        ProductType     `json:"type" example:"simple"`
	Name        string          `json:"name" example:"Block of cheese"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" example:"100"`
	CategoryIDs []int64         `json:"category_ids" example:"60"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// IsVariation reports whether the product is a variation of a parent product.
func (p Product) IsVariation() bool {
	return p.Type == ProductTypeVariation && p.ParentID != 0
}
