package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/format"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		os.Clearenv()

		cfg := Load()

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
		assert.True(t, cfg.Server.EnableIdempotency)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, 1, cfg.Cache.Shards)
		assert.False(t, cfg.Auth.Enabled)
		assert.False(t, cfg.Database.Enabled)
		assert.Equal(t, "tier_pricing", cfg.Database.DatabaseName)
		assert.Equal(t, "3:20", cfg.Pricing.Tiers)
		assert.Equal(t, "flat", cfg.Pricing.Mode)
		assert.Equal(t, "60", cfg.Pricing.CategoryIDs)
		assert.Equal(t, "once", cfg.Pricing.ReentryGuard)
		assert.Equal(t, model.DefaultMaxLineQuantity, cfg.Pricing.MaxLineQuantity)
		assert.Equal(t, model.DefaultMaxCartQuantity, cfg.Pricing.MaxCartQuantity)
		assert.Equal(t, "$", cfg.Display.CurrencySymbol)
		assert.Equal(t, 2, cfg.Display.Decimals)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("PORT", "9090")
		_ = os.Setenv("RATE_LIMIT", "50")
		_ = os.Setenv("RATE_WINDOW", "30s")
		_ = os.Setenv("CACHE_SIZE", "500")
		_ = os.Setenv("CACHE_SHARDS", "8")
		_ = os.Setenv("AUTH_ENABLED", "true")
		_ = os.Setenv("API_KEYS", "key1, key2")
		_ = os.Setenv("DISCOUNT_TIERS", "2:25,3:50")
		_ = os.Setenv("DISCOUNT_MODE", "percent")
		_ = os.Setenv("MAX_LINE_QUANTITY", "250")
		_ = os.Setenv("CURRENCY_SYMBOL", "€")
		_ = os.Setenv("CURRENCY_POSITION", "right_space")
		_ = os.Setenv("LOG_PRETTY", "true")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 500, cfg.Cache.Size)
		assert.Equal(t, 8, cfg.Cache.Shards)
		assert.True(t, cfg.Auth.Enabled)
		assert.True(t, cfg.Auth.APIKeys["key1"])
		assert.True(t, cfg.Auth.APIKeys["key2"])
		assert.Equal(t, "2:25,3:50", cfg.Pricing.Tiers)
		assert.Equal(t, "percent", cfg.Pricing.Mode)
		assert.Equal(t, 250, cfg.Pricing.MaxLineQuantity)
		assert.Equal(t, "€", cfg.Display.CurrencySymbol)
		assert.True(t, cfg.Log.Pretty)
	})

	t.Run("handles invalid values gracefully", func(t *testing.T) {
		os.Clearenv()
		_ = os.Setenv("RATE_LIMIT", "invalid")
		_ = os.Setenv("AUTH_ENABLED", "invalid")
		_ = os.Setenv("RATE_WINDOW", "invalid")
		defer os.Clearenv()

		cfg := Load()

		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
	})
}

func TestPricingConfig_Rules(t *testing.T) {
	valid := PricingConfig{Tiers: "3:20", Mode: "flat", CategoryIDs: "60", NegativePricePolicy: "clamp"}

	t.Run("defaults match the shop plugin", func(t *testing.T) {
		rules, err := valid.Rules()
		require.NoError(t, err)
		require.Len(t, rules.Tiers, 1)
		assert.Equal(t, 3, rules.Tiers[0].Threshold)
		assert.True(t, decimal.NewFromInt(20).Equal(rules.Tiers[0].Amount))
		assert.Equal(t, model.ModeFlat, rules.Mode)
		assert.Equal(t, []int64{60}, rules.CategoryIDs)
		assert.Equal(t, model.NegativePriceClamp, rules.NegativePrice)
	})

	tests := []struct {
		name   string
		mutate func(*PricingConfig)
		field  string
	}{
		{name: "malformed tier", mutate: func(p *PricingConfig) { p.Tiers = "3-20" }, field: "tiers"},
		{name: "empty tiers", mutate: func(p *PricingConfig) { p.Tiers = "" }, field: "tiers"},
		{name: "unknown mode", mutate: func(p *PricingConfig) { p.Mode = "bogo" }, field: "mode"},
		{name: "unknown policy", mutate: func(p *PricingConfig) { p.NegativePricePolicy = "wrap" }, field: "negative_price_policy"},
		{name: "bad category", mutate: func(p *PricingConfig) { p.CategoryIDs = "60,abc" }, field: "discount_categories"},
		{name: "no category", mutate: func(p *PricingConfig) { p.CategoryIDs = " , " }, field: "discount_categories"},
		{name: "percent over 100", mutate: func(p *PricingConfig) { p.Mode = "percent"; p.Tiers = "3:150" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			_, err := cfg.Rules()
			var cfgErr *model.ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			if tt.field != "" {
				assert.Equal(t, tt.field, cfgErr.Field)
			}
		})
	}
}

func TestPricingConfig_Limits(t *testing.T) {
	tests := []struct {
		name    string
		cfg     PricingConfig
		want    model.QuantityLimits
		wantErr bool
	}{
		{
			name: "configured",
			cfg:  PricingConfig{MaxLineQuantity: 50, MaxCartQuantity: 500},
			want: model.QuantityLimits{MaxLine: 50, MaxCart: 500},
		},
		{
			name: "unset falls back to defaults",
			cfg:  PricingConfig{},
			want: model.DefaultQuantityLimits(),
		},
		{
			name:    "above ceiling",
			cfg:     PricingConfig{MaxLineQuantity: model.MaxQuantityCeiling + 1, MaxCartQuantity: model.MaxQuantityCeiling},
			wantErr: true,
		},
		{
			name:    "line above cart",
			cfg:     PricingConfig{MaxLineQuantity: 100, MaxCartQuantity: 10},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits, err := tt.cfg.Limits()
			if tt.wantErr {
				var cfgErr *model.ConfigurationError
				assert.ErrorAs(t, err, &cfgErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, limits)
		})
	}
}

func TestDisplayConfig_FormatOptions(t *testing.T) {
	d := DisplayConfig{CurrencySymbol: "€", CurrencyPosition: "right_space", Decimals: 2, ThousandSeparator: ".", DecimalSeparator: ","}

	opts := d.FormatOptions()
	assert.Equal(t, format.PositionRightSpace, opts.Position)
	assert.Equal(t, int32(2), opts.Decimals)

	f, err := format.New(opts)
	require.NoError(t, err)
	assert.Equal(t, "1.234,50 €", f.Format(decimal.RequireFromString("1234.5")))
}

func TestParseCORSOrigins(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, parseCORSOrigins(""))
	assert.Contains(t, parseCORSOrigins("https://shop.example, "), "https://shop.example")
}
