package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/repository"
)

// ErrParentRequired is returned when a variation is stored without a parent id.
var ErrParentRequired = errors.New("variation requires a parent product")

// ProductService manages catalog products.
type ProductService interface {
	Get(ctx context.Context, id int64) (*model.Product, error)
	Upsert(ctx context.Context, product model.Product) (*model.Product, error)
	Variations(ctx context.Context, parentID int64) ([]model.Product, error)
}

// ProductServiceImpl implements ProductService.
type ProductServiceImpl struct {
	repo repository.ProductRepositoryInterface
}

// NewProductService creates a product service.
func NewProductService(repo repository.ProductRepositoryInterface) ProductService {
	return &ProductServiceImpl{repo: repo}
}

// Get returns the product or ErrProductNotFound.
func (s *ProductServiceImpl) Get(ctx context.Context, id int64) (*model.Product, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Upsert stores the product. A variation must name an existing parent.
func (s *ProductServiceImpl) Upsert(ctx context.Context, product model.Product) (*model.Product, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if product.Type == "" {
		product.Type = model.ProductTypeSimple
	}
	if product.Type == model.ProductTypeVariation {
		if product.ParentID == 0 {
			return nil, ErrParentRequired
		}
		if _, err := s.Get(ctx, product.ParentID); err != nil {
			return nil, fmt.Errorf("parent %d: %w", product.ParentID, err)
		}
	}
	return s.repo.Upsert(ctx, product)
}

// Variations lists the variations of a variable product.
func (s *ProductServiceImpl) Variations(ctx context.Context, parentID int64) ([]model.Product, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.ListByParent(ctx, parentID)
}
