package app

import (
	"time"

	"github.com/guttosm/tier-pricing-service/config"
)

// testConfig mirrors the defaults config.Load applies with an empty environment.
func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:              "8080",
			RateLimit:         100,
			RateWindow:        time.Minute,
			RequestTimeout:    30 * time.Second,
			EnableIdempotency: true,
		},
		Cache: config.CacheConfig{
			Size:     100,
			TTL:      time.Minute,
			Shards:   1,
			RulesTTL: 30 * time.Second,
		},
		Pricing: config.PricingConfig{
			Tiers:               "3:20",
			Mode:                "flat",
			CategoryIDs:         "60",
			NegativePricePolicy: "clamp",
			ReentryGuard:        "once",
		},
		Display: config.DisplayConfig{
			CurrencySymbol:    "$",
			CurrencyPosition:  "left",
			Decimals:          2,
			ThousandSeparator: ",",
			DecimalSeparator:  ".",
		},
		Log: config.LogConfig{Level: "error"},
	}
}
