package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/format"
	"github.com/shopspring/decimal"
)

// Error codes returned in ErrorResponse.Error.
const (
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeInternal           = "internal_error"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeNotFound           = "not_found"
	ErrCodeRateLimit          = "rate_limit_exceeded"
	ErrCodeConflict           = "conflict"
	ErrCodeTimeout            = "timeout"
	ErrCodeServiceUnavailable = "service_unavailable"
)

// SuccessResponse wraps every successful payload.
// @Description Successful API response wrapper
type SuccessResponse struct {
	Data      interface{} `json:"data" swaggertype:"object"`
	RequestID string      `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time   `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse is the body of every error.
// @Description Standardized error response
type ErrorResponse struct {
	Error     string            `json:"error" example:"invalid_request"`
	Message   string            `json:"message,omitempty" example:"items[0].quantity: must not be negative"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name ErrorResponse

// NewError creates an ErrorResponse stamped with the current time.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// WithRequestID sets the request id.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail adds one detail entry.
func (e ErrorResponse) WithDetail(key, value string) ErrorResponse {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// ErrCodeFromStatus maps an HTTP status to an error code.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeServiceUnavailable
	default:
		return ErrCodeInternal
	}
}

// TierResponse is one matched tier.
type TierResponse struct {
	Threshold int             `json:"threshold" example:"3"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"20"`
} // @name TierResponse

// PricedItemResponse is one priced cart line.
//
// @Description Priced cart line. price is the effective unit price the shop should charge.
type PricedItemResponse struct {
	Key             string                 `json:"key" example:"c4ca4238a0b923820dcc509a6f75849b"`
	ProductID       int64                  `json:"product_id" example:"5035"`
	ParentID        int64                  `json:"parent_id,omitempty" example:"0"`
	Quantity        int                    `json:"quantity" example:"4"`
	BasePrice       decimal.Decimal        `json:"base_price" swaggertype:"string" example:"100"`
	Eligible        bool                   `json:"eligible"`
	Adjusted        bool                   `json:"adjusted"`
	Price           decimal.Decimal        `json:"price" swaggertype:"string" example:"85"`
	LineTotal       decimal.Decimal        `json:"line_total" swaggertype:"string" example:"340"`
	DiscountedUnits int                    `json:"discounted_units" example:"3"`
	AdjustedPrices  []decimal.Decimal      `json:"adjusted_prices,omitempty" swaggertype:"array,string"`
	Breakdown       []format.BreakdownLine `json:"breakdown,omitempty"`
	PriceDisplay    string                 `json:"price_display" example:"$80.00 × 3<br />$100.00 × 1"`
} // @name PricedItemResponse

// PricedCartResponse is the result of pricing a cart.
//
// @Description Priced cart with totals and the matched tier
type PricedCartResponse struct {
	Items                 []PricedItemResponse `json:"items"`
	TotalEligibleQuantity int                  `json:"total_eligible_quantity" example:"4"`
	MatchedTier           *TierResponse        `json:"matched_tier,omitempty"`
	QuantityToDiscount    int                  `json:"quantity_to_discount" example:"3"`
	FullPricedRemainder   int                  `json:"full_priced_remainder" example:"1"`
	Subtotal              decimal.Decimal      `json:"subtotal" swaggertype:"string" example:"400"`
	Total                 decimal.Decimal      `json:"total" swaggertype:"string" example:"340"`
	Savings               decimal.Decimal      `json:"savings" swaggertype:"string" example:"60"`
	SubtotalDisplay       string               `json:"subtotal_display" example:"$400.00"`
	TotalDisplay          string               `json:"total_display" example:"$340.00"`
} // @name PricedCartResponse

// Sources of the tier configuration in effect.
const (
	TierSourceStored  = "stored"
	TierSourceDefault = "default"
)

// TierConfigResponse describes a tier configuration. Source is "default" when
// nothing is stored and the configured defaults apply.
//
// @Description Tier configuration and its version metadata
type TierConfigResponse struct {
	ID                  string         `json:"id,omitempty" example:"65b7f0c2e4b0a1a2b3c4d5e6"`
	Source              string         `json:"source" example:"stored" enums:"stored,default"`
	Version             int            `json:"version,omitempty" example:"3"`
	Active              bool           `json:"active"`
	Tiers               []TierResponse `json:"tiers"`
	Mode                string         `json:"mode" example:"flat"`
	CategoryIDs         []int64        `json:"category_ids" example:"60"`
	NegativePricePolicy string         `json:"negative_price_policy" example:"clamp"`
	CreatedAt           *time.Time     `json:"created_at,omitempty"`
	UpdatedAt           *time.Time     `json:"updated_at,omitempty"`
	CreatedBy           string         `json:"created_by,omitempty" example:"ops"`
} // @name TierConfigResponse

// ProductResponse is a catalog product with its variations.
type ProductResponse struct {
	Product    model.Product   `json:"product"`
	Variations []model.Product `json:"variations,omitempty"`
} // @name ProductResponse
