package app

import (
	"context"
	"time"

	"github.com/guttosm/tier-pricing-service/config"
	"github.com/guttosm/tier-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/metrics"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"github.com/guttosm/tier-pricing-service/internal/service"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds the MongoDB-backed repositories and services.
type DatabaseComponents struct {
	DB                *repository.MongoDB
	TierConfigService service.TierConfigService
	ProductService    service.ProductService
	LoggingService    service.LoggingService
	Catalog           service.Catalog
	CircuitBreakers   map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories behind
// circuit breakers. It returns nil when the database is disabled or unreachable.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ttlDays := int(cfg.LogsTTL.Hours() / 24)
	if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	breakers := map[string]*circuitbreaker.CircuitBreaker{
		"mongodb_tier_configs": newBreaker(cfg, "mongodb_tier_configs"),
		"mongodb_products":     newBreaker(cfg, "mongodb_products"),
		"mongodb_logs":         newBreaker(cfg, "mongodb_logs"),
	}

	tierConfigRepo := repository.NewTierConfigRepositoryWithCircuitBreaker(
		repository.NewTierConfigRepository(db), breakers["mongodb_tier_configs"])
	productRepo := repository.NewProductRepositoryWithCircuitBreaker(
		repository.NewProductRepository(db), breakers["mongodb_products"])
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewLogsRepository(db), breakers["mongodb_logs"])

	return &DatabaseComponents{
		DB:                db,
		TierConfigService: service.NewTierConfigService(tierConfigRepo),
		ProductService:    service.NewProductService(productRepo),
		LoggingService:    service.NewLoggingService(logsRepo),
		Catalog:           service.NewRepositoryCatalog(productRepo),
		CircuitBreakers:   breakers,
	}
}

func newBreaker(cfg config.DatabaseConfig, name string) *circuitbreaker.CircuitBreaker {
	metrics.SetCircuitBreakerState(name, circuitbreaker.StateClosed.Severity())
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
		IsFailure:        repository.IsStoreFailure,
		OnStateChange:    onBreakerStateChange,
	})
}

func onBreakerStateChange(name string, from, to circuitbreaker.State) {
	metrics.SetCircuitBreakerState(name, to.Severity())
	log.Warn().
		Str("breaker", name).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("Circuit breaker state changed")
}

// Close disconnects from MongoDB. It is a no-op on nil components.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}

// seedDefaultTierConfig stores the configured rules as the first version when
// nothing is stored yet.
func seedDefaultTierConfig(svc service.TierConfigService, rules model.Rules) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	active, err := svc.GetActive(ctx)
	if err != nil {
		return err
	}
	if active != nil {
		return nil
	}

	cfg, err := svc.Create(ctx, rules, "system")
	if err != nil {
		return err
	}
	log.Info().Int("version", cfg.Version).Int("tiers", len(rules.Tiers)).Msg("Stored default tier configuration")
	return nil
}
