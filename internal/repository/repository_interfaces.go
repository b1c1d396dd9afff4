package repository

import (
	"context"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TierConfigRepositoryInterface is implemented by TierConfigRepository and its circuit breaker wrapper.
type TierConfigRepositoryInterface interface {
	GetActive(ctx context.Context) (*TierConfig, error)
	Create(ctx context.Context, rules model.Rules, createdBy string) (*TierConfig, error)
	Update(ctx context.Context, id primitive.ObjectID, rules model.Rules, updatedBy string) (*TierConfig, error)
	List(ctx context.Context, limit int) ([]TierConfig, error)
}

// ProductRepositoryInterface is implemented by ProductRepository and its circuit breaker wrapper.
type ProductRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	Upsert(ctx context.Context, product model.Product) (*model.Product, error)
	ListByParent(ctx context.Context, parentID int64) ([]model.Product, error)
}

// LogsRepositoryInterface is implemented by LogsRepository and its circuit breaker wrapper.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
