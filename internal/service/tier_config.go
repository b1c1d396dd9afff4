package service

import (
	"context"
	"errors"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrRepositoryNotConfigured is returned when the backing repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// TierConfigService manages stored tier configurations.
type TierConfigService interface {
	GetActive(ctx context.Context) (*repository.TierConfig, error)
	// ActiveRules returns the rules of the active configuration. ok is false when none is stored.
	ActiveRules(ctx context.Context) (rules model.Rules, ok bool, err error)
	Create(ctx context.Context, rules model.Rules, createdBy string) (*repository.TierConfig, error)
	Update(ctx context.Context, id primitive.ObjectID, rules model.Rules, updatedBy string) (*repository.TierConfig, error)
	List(ctx context.Context, limit int) ([]repository.TierConfig, error)
}

// TierConfigServiceImpl implements TierConfigService.
type TierConfigServiceImpl struct {
	repo repository.TierConfigRepositoryInterface
}

// NewTierConfigService creates a tier config service. A nil repo makes every call
// fail with ErrRepositoryNotConfigured.
func NewTierConfigService(repo repository.TierConfigRepositoryInterface) TierConfigService {
	return &TierConfigServiceImpl{repo: repo}
}

func (s *TierConfigServiceImpl) GetActive(ctx context.Context) (*repository.TierConfig, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.GetActive(ctx)
}

func (s *TierConfigServiceImpl) ActiveRules(ctx context.Context) (model.Rules, bool, error) {
	cfg, err := s.GetActive(ctx)
	if err != nil || cfg == nil {
		return model.Rules{}, false, err
	}
	rules, err := cfg.Rules()
	if err != nil {
		return model.Rules{}, false, err
	}
	return rules.Normalized(), true, nil
}

// Create validates rules and stores them as the new active configuration.
func (s *TierConfigServiceImpl) Create(ctx context.Context, rules model.Rules, createdBy string) (*repository.TierConfig, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, rules.Normalized(), createdBy)
}

func (s *TierConfigServiceImpl) Update(ctx context.Context, id primitive.ObjectID, rules model.Rules, updatedBy string) (*repository.TierConfig, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, rules.Normalized(), updatedBy)
}

func (s *TierConfigServiceImpl) List(ctx context.Context, limit int) ([]repository.TierConfig, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, limit)
}
