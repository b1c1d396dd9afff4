package repository

import (
	"context"
	"errors"

	"github.com/guttosm/tier-pricing-service/internal/circuitbreaker"
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func guarded[T any](ctx context.Context, cb *circuitbreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	var result T
	err := cb.Execute(ctx, func() error {
		var fnErr error
		result, fnErr = fn()
		return fnErr
	})
	return result, err
}

// IsStoreFailure reports whether err indicates an unhealthy store. Missing documents
// and cancelled requests do not count.
func IsStoreFailure(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrNotFound) &&
		!errors.Is(err, context.Canceled)
}

// TierConfigRepositoryWithCircuitBreaker guards a TierConfigRepository.
type TierConfigRepositoryWithCircuitBreaker struct {
	repo           TierConfigRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewTierConfigRepositoryWithCircuitBreaker wraps repo with cb.
func NewTierConfigRepositoryWithCircuitBreaker(repo TierConfigRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *TierConfigRepositoryWithCircuitBreaker {
	return &TierConfigRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// GetActive returns nil, nil while the circuit is open so callers fall back to configured defaults.
func (r *TierConfigRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*TierConfig, error) {
	cfg, err := guarded(ctx, r.circuitBreaker, func() (*TierConfig, error) {
		return r.repo.GetActive(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return cfg, err
}

// Create stores a new active configuration.
func (r *TierConfigRepositoryWithCircuitBreaker) Create(ctx context.Context, rules model.Rules, createdBy string) (*TierConfig, error) {
	return guarded(ctx, r.circuitBreaker, func() (*TierConfig, error) {
		return r.repo.Create(ctx, rules, createdBy)
	})
}

// Update changes an existing configuration.
func (r *TierConfigRepositoryWithCircuitBreaker) Update(ctx context.Context, id primitive.ObjectID, rules model.Rules, updatedBy string) (*TierConfig, error) {
	return guarded(ctx, r.circuitBreaker, func() (*TierConfig, error) {
		return r.repo.Update(ctx, id, rules, updatedBy)
	})
}

// List returns configuration history.
func (r *TierConfigRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]TierConfig, error) {
	return guarded(ctx, r.circuitBreaker, func() ([]TierConfig, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker exposes the breaker for health reporting.
func (r *TierConfigRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// ProductRepositoryWithCircuitBreaker guards a ProductRepository.
type ProductRepositoryWithCircuitBreaker struct {
	repo           ProductRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewProductRepositoryWithCircuitBreaker wraps repo with cb.
func NewProductRepositoryWithCircuitBreaker(repo ProductRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *ProductRepositoryWithCircuitBreaker {
	return &ProductRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// GetByID looks up a product.
func (r *ProductRepositoryWithCircuitBreaker) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.Product, error) {
		return r.repo.GetByID(ctx, id)
	})
}

// Upsert stores a product.
func (r *ProductRepositoryWithCircuitBreaker) Upsert(ctx context.Context, product model.Product) (*model.Product, error) {
	return guarded(ctx, r.circuitBreaker, func() (*model.Product, error) {
		return r.repo.Upsert(ctx, product)
	})
}

// ListByParent returns the variations of a product.
func (r *ProductRepositoryWithCircuitBreaker) ListByParent(ctx context.Context, parentID int64) ([]model.Product, error) {
	return guarded(ctx, r.circuitBreaker, func() ([]model.Product, error) {
		return r.repo.ListByParent(ctx, parentID)
	})
}

// GetCircuitBreaker exposes the breaker for health reporting.
func (r *ProductRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker guards a LogsRepository. Writes are dropped while
// the circuit is open.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker wraps repo with cb.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores one entry.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores a batch of entries.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query returns matching entries.
func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return guarded(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

// Count returns the number of matching entries.
func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return guarded(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker exposes the breaker for health reporting.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
