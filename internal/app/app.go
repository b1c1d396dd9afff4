// Package app wires configuration, storage, services and the HTTP router.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/tier-pricing-service/config"
	"github.com/guttosm/tier-pricing-service/internal/http"
	"github.com/guttosm/tier-pricing-service/internal/middleware"
	"github.com/guttosm/tier-pricing-service/internal/service"
	"github.com/rs/zerolog/log"
)

// Application is the wired service.
type Application struct {
	Router   *gin.Engine
	services *ServiceComponents
	database *DatabaseComponents
}

// InitializeApp creates and wires all application dependencies. It fails when
// the pricing or display configuration is invalid. A MongoDB that cannot be
// reached is not an error: the service then prices inline carts with the
// configured rules.
func InitializeApp(cfg config.Config) (*Application, error) {
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)

	var catalog service.Catalog
	if dbComponents != nil {
		catalog = dbComponents.Catalog
	}

	serviceComponents, err := InitializeServices(cfg, catalog)
	if err != nil {
		dbComponents.Close(context.Background())
		return nil, err
	}

	if dbComponents != nil {
		if err := seedDefaultTierConfig(dbComponents.TierConfigService, serviceComponents.Rules); err != nil {
			log.Warn().Err(err).Msg("Failed to store default tier configuration")
		}
		middleware.InitAsyncLogger(dbComponents.LoggingService, middleware.DefaultAsyncLoggerConfig())
	}

	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return &Application{
		Router: http.NewRouter(
			routerComponents.Handler,
			routerComponents.TierHandler,
			routerComponents.ProductHandler,
			routerComponents.HealthHandler,
			routerComponents.Config,
		),
		services: serviceComponents,
		database: dbComponents,
	}, nil
}

// Close flushes pending audit entries and releases the cache and the MongoDB client.
func (a *Application) Close(ctx context.Context) error {
	middleware.StopAsyncLogger()
	a.services.Calculator.Stop()
	return a.database.Close(ctx)
}
