package app

import (
	"context"

	"github.com/guttosm/tier-pricing-service/config"
	"github.com/guttosm/tier-pricing-service/internal/http"
	"github.com/guttosm/tier-pricing-service/internal/service"
)

// RouterComponents holds the handlers and router configuration.
type RouterComponents struct {
	Handler        *http.Handler
	TierHandler    *http.TierConfigHandler
	ProductHandler *http.ProductHandler
	HealthHandler  *http.HealthHandler
	Config         http.RouterConfig
}

// InitializeRouter builds the HTTP handlers. Tier and product endpoints are
// only available with a database.
func InitializeRouter(services *ServiceComponents, dbComponents *DatabaseComponents, cfg config.Config) *RouterComponents {
	opts := []http.HandlerOption{
		http.WithFormatter(services.Formatter),
		http.WithGuardPolicy(services.Guard),
		http.WithRulesCacheTTL(cfg.Cache.RulesTTL),
	}

	var loggingService service.LoggingService
	if dbComponents != nil {
		opts = append(opts, http.WithTierConfigService(dbComponents.TierConfigService))
		loggingService = dbComponents.LoggingService
	}

	handler := http.NewHandler(services.Pricer, opts...)
	healthHandler := http.NewHealthHandler()

	var tierHandler *http.TierConfigHandler
	var productHandler *http.ProductHandler
	if dbComponents != nil {
		tierHandler = http.NewTierConfigHandler(dbComponents.TierConfigService, services.Calculator.Rules, handler.InvalidateRulesCache)
		productHandler = http.NewProductHandler(dbComponents.ProductService)

		db := dbComponents.DB
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(func() error {
			return db.HealthCheck(context.Background())
		}))
		for name, cb := range dbComponents.CircuitBreakers {
			healthHandler.RegisterCircuitBreaker(name, cb)
		}
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableAuth:        cfg.Auth.Enabled,
		APIKeys:           cfg.Auth.APIKeys,
		EnableIdempotency: cfg.Server.EnableIdempotency,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
	}

	return &RouterComponents{
		Handler:        handler,
		TierHandler:    tierHandler,
		ProductHandler: productHandler,
		HealthHandler:  healthHandler,
		Config:         routerCfg,
	}
}
