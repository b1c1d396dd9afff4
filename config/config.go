// Package config loads the service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/format"
	"github.com/joho/godotenv"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Pricing  PricingConfig
	Display  DisplayConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              string
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	EnableIdempotency bool
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
}

// CacheConfig sizes the calculation result cache and the active rules cache.
type CacheConfig struct {
	Size     int
	TTL      time.Duration
	Shards   int
	RulesTTL time.Duration
}

// AuthConfig holds API key authentication settings.
type AuthConfig struct {
	Enabled bool
	APIKeys map[string]bool
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// PricingConfig holds the default discount rules in their raw form. They are
// parsed by Rules so that a bad value can stop the process at startup.
type PricingConfig struct {
	Tiers               string
	Mode                string
	CategoryIDs         string
	NegativePricePolicy string
	// ReentryGuard applies to hosts that run the pricing hooks more than once per
	// cart load. The HTTP API prices each request in a fresh session, so over HTTP
	// "once" and "always" behave the same.
	ReentryGuard        string
	MaxLineQuantity     int
	MaxCartQuantity     int
}

// DisplayConfig controls how prices are rendered.
type DisplayConfig struct {
	CurrencySymbol    string
	CurrencyPosition  string
	Decimals          int
	ThousandSeparator string
	DecimalSeparator  string
}

// LogConfig holds zerolog settings.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads an optional .env file and then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			RateLimit:         getEnvInt("RATE_LIMIT", 100),
			RateWindow:        getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			EnableIdempotency: getEnvBool("IDEMPOTENCY_ENABLED", true),
			CORSOrigins:       parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:       getEnv("SWAGGER_USER", ""),
			SwaggerPass:       getEnv("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size:     getEnvInt("CACHE_SIZE", 1000),
			TTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),
			Shards:   getEnvInt("CACHE_SHARDS", 1),
			RulesTTL: getEnvDuration("RULES_CACHE_TTL", 30*time.Second),
		},
		Auth: AuthConfig{
			Enabled: getEnvBool("AUTH_ENABLED", false),
			APIKeys: parseAPIKeys(os.Getenv("API_KEYS")),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "tier_pricing"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Pricing: PricingConfig{
			Tiers:               getEnv("DISCOUNT_TIERS", "3:20"),
			Mode:                getEnv("DISCOUNT_MODE", string(model.ModeFlat)),
			CategoryIDs:         getEnv("DISCOUNT_CATEGORIES", "60"),
			NegativePricePolicy: getEnv("NEGATIVE_PRICE_POLICY", string(model.NegativePriceClamp)),
			ReentryGuard:        getEnv("REENTRY_GUARD", "once"),
			MaxLineQuantity:     getEnvInt("MAX_LINE_QUANTITY", model.DefaultMaxLineQuantity),
			MaxCartQuantity:     getEnvInt("MAX_CART_QUANTITY", model.DefaultMaxCartQuantity),
		},
		Display: DisplayConfig{
			CurrencySymbol:    getEnv("CURRENCY_SYMBOL", "$"),
			CurrencyPosition:  getEnv("CURRENCY_POSITION", string(format.PositionLeft)),
			Decimals:          getEnvInt("PRICE_DECIMALS", 2),
			ThousandSeparator: getEnv("THOUSAND_SEPARATOR", ","),
			DecimalSeparator:  getEnv("DECIMAL_SEPARATOR", "."),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}
}

// Rules parses and validates the default discount rules. Errors are
// *model.ConfigurationError.
func (p PricingConfig) Rules() (model.Rules, error) {
	tiers, err := model.ParseTiers(p.Tiers)
	if err != nil {
		return model.Rules{}, err
	}
	mode, err := model.ParseMode(p.Mode)
	if err != nil {
		return model.Rules{}, err
	}
	policy, err := model.ParseNegativePricePolicy(p.NegativePricePolicy)
	if err != nil {
		return model.Rules{}, err
	}
	categories, err := parseInt64Slice("discount_categories", p.CategoryIDs)
	if err != nil {
		return model.Rules{}, err
	}

	rules := model.Rules{Tiers: tiers, Mode: mode, CategoryIDs: categories, NegativePrice: policy}
	if err := rules.Validate(); err != nil {
		return model.Rules{}, err
	}
	return rules, nil
}

// Limits returns the quantity limits. Errors are *model.ConfigurationError.
func (p PricingConfig) Limits() (model.QuantityLimits, error) {
	limits := model.QuantityLimits{MaxLine: p.MaxLineQuantity, MaxCart: p.MaxCartQuantity}
	if err := limits.Validate(); err != nil {
		return model.QuantityLimits{}, err
	}
	return limits.OrDefault(), nil
}

// FormatOptions converts the display settings for format.New.
func (d DisplayConfig) FormatOptions() format.Options {
	return format.Options{
		Symbol:            d.CurrencySymbol,
		Position:          format.Position(d.CurrencyPosition),
		Decimals:          int32(d.Decimals),
		ThousandSeparator: d.ThousandSeparator,
		DecimalSeparator:  d.DecimalSeparator,
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseInt64Slice parses a comma separated id list. Unlike the other helpers it
// reports bad entries, since a silently dropped category changes prices.
func parseInt64Slice(field, s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	result := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil || v <= 0 {
			return nil, &model.ConfigurationError{Field: field, Message: "invalid id " + strconv.Quote(p)}
		}
		result = append(result, v)
	}
	if len(result) == 0 {
		return nil, &model.ConfigurationError{Field: field, Message: "at least one category is required"}
	}
	return result, nil
}

func parseAPIKeys(s string) map[string]bool {
	if s == "" {
		return nil
	}
	keys := strings.Split(s, ",")
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			result[k] = true
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
