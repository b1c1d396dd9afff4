package i18n

// Error message keys.
const (
	ErrKeyInvalidRequest      = "error.invalid_request"
	ErrKeyInvalidRequestBody  = "error.invalid_request_body"
	ErrKeyInternalError       = "error.internal_error"
	ErrKeyAPIKeyRequired      = "error.api_key_required"
	ErrKeyInvalidAPIKey       = "error.invalid_api_key"
	ErrKeyNotFound            = "error.not_found"
	ErrKeyRateLimitExceeded   = "error.rate_limit_exceeded"
	ErrKeyConflict            = "error.conflict"
	ErrKeyTimeout             = "error.timeout"
	ErrKeyServiceUnavailable  = "error.service_unavailable"
	ErrKeyValidationCart      = "error.validation.cart"
	ErrKeyValidationTiers     = "error.validation.tiers"
	ErrKeyValidationProduct   = "error.validation.product"
	ErrKeyProductNotFound     = "error.product_not_found"
	ErrKeyCatalogUnavailable  = "error.catalog_unavailable"
	ErrKeyTierConfigNotFound  = "error.tier_config_not_found"
	ErrKeyStorageNotAvailable = "error.storage_not_available"
)

// Success message keys.
const (
	SuccessKeyCartPriced   = "success.cart_priced"
	SuccessKeyTiersUpdated = "success.tiers_updated"
)
