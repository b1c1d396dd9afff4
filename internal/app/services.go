package app

import (
	"fmt"

	"github.com/guttosm/tier-pricing-service/config"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/format"
	"github.com/guttosm/tier-pricing-service/internal/logger"
	"github.com/guttosm/tier-pricing-service/internal/service"
	"github.com/rs/zerolog"
)

// ServiceComponents holds the pricing services.
type ServiceComponents struct {
	Rules      model.Rules
	Limits     model.QuantityLimits
	Calculator *service.TierCalculatorService
	Pricer     *service.CartPricer
	Formatter  *format.Formatter
	Guard      service.GuardPolicy
}

// configError names the configuration section that failed to load.
type configError struct {
	section string
	err     error
}

func (e *configError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %v", e.section, e.err)
}

func (e *configError) Unwrap() error { return e.err }

// InitializeServices builds the calculator, pricer and formatter. catalog may
// be nil, in which case every cart line must carry its own price and categories.
func InitializeServices(cfg config.Config, catalog service.Catalog) (*ServiceComponents, error) {
	rules, err := cfg.Pricing.Rules()
	if err != nil {
		return nil, &configError{section: "pricing", err: err}
	}

	guard, err := service.ParseGuardPolicy(cfg.Pricing.ReentryGuard)
	if err != nil {
		return nil, &configError{section: "pricing", err: err}
	}

	limits, err := cfg.Pricing.Limits()
	if err != nil {
		return nil, &configError{section: "pricing", err: err}
	}

	formatter, err := format.New(cfg.Display.FormatOptions())
	if err != nil {
		return nil, &configError{section: "display", err: err}
	}

	opts := []service.Option{
		service.WithRules(rules),
		service.WithMaxQuantities(limits),
		service.WithObserver(tierMatchLogger(logger.Component("pricing"))),
	}
	if cfg.Cache.Size > 0 {
		opts = append(opts, service.WithShardedCache(cfg.Cache.Size, cfg.Cache.TTL, cfg.Cache.Shards))
	}

	calculator, err := service.NewTierCalculatorService(opts...)
	if err != nil {
		return nil, &configError{section: "pricing", err: err}
	}

	return &ServiceComponents{
		Rules:      calculator.Rules(),
		Limits:     limits,
		Calculator: calculator,
		Pricer:     service.NewCartPricer(calculator, catalog, service.WithQuantityLimits(limits)),
		Formatter:  formatter,
		Guard:      guard,
	}, nil
}

// tierMatchLogger records every freshly computed cart that reached a tier.
// Cached results are not reported again.
func tierMatchLogger(log zerolog.Logger) func(model.PricedCart) {
	return func(result model.PricedCart) {
		if result.MatchedTier == nil {
			return
		}
		log.Debug().
			Int("threshold", result.MatchedTier.Threshold).
			Int("eligible_quantity", result.TotalEligibleQuantity).
			Int("discounted_units", result.QuantityToDiscount).
			Str("savings", result.Savings.String()).
			Msg("Tier matched")
	}
}
