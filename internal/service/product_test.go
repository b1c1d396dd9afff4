package service

import (
	"context"
	"testing"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/mocks"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_Get(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockProductRepository(t)
	repo.On("GetByID", mock.Anything, int64(10)).Return(&model.Product{ID: 10}, nil)
	repo.On("GetByID", mock.Anything, int64(11)).Return(nil, repository.ErrNotFound)

	svc := NewProductService(repo)

	p, err := svc.Get(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)

	_, err = svc.Get(ctx, 11)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = NewProductService(nil).Get(ctx, 10)
	assert.ErrorIs(t, err, ErrRepositoryNotConfigured)
}

func TestProductService_Upsert(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		product model.Product
		setup   func(*mocks.MockProductRepository)
		wantErr error
	}{
		{
			name:    "simple product defaults its type",
			product: model.Product{ID: 1, Price: dec("10"), CategoryIDs: []int64{60}},
			setup: func(m *mocks.MockProductRepository) {
				m.On("Upsert", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
					return p.Type == model.ProductTypeSimple
				})).Return(&model.Product{ID: 1, Type: model.ProductTypeSimple}, nil)
			},
		},
		{
			name:    "variation with existing parent",
			product: model.Product{ID: 3, ParentID: 2, Type: model.ProductTypeVariation, Price: dec("12")},
			setup: func(m *mocks.MockProductRepository) {
				m.On("GetByID", mock.Anything, int64(2)).Return(&model.Product{ID: 2, Type: model.ProductTypeVariable}, nil)
				m.On("Upsert", mock.Anything, mock.Anything).Return(&model.Product{ID: 3}, nil)
			},
		},
		{
			name:    "variation without parent",
			product: model.Product{ID: 3, Type: model.ProductTypeVariation},
			setup:   func(*mocks.MockProductRepository) {},
			wantErr: ErrParentRequired,
		},
		{
			name:    "variation with unknown parent",
			product: model.Product{ID: 3, ParentID: 9, Type: model.ProductTypeVariation},
			setup: func(m *mocks.MockProductRepository) {
				m.On("GetByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockProductRepository(t)
			tt.setup(repo)

			_, err := NewProductService(repo).Upsert(ctx, tt.product)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProductService_Variations(t *testing.T) {
	repo := mocks.NewMockProductRepository(t)
	repo.On("ListByParent", mock.Anything, int64(20)).Return([]model.Product{{ID: 21}, {ID: 22}}, nil)

	variations, err := NewProductService(repo).Variations(context.Background(), 20)
	require.NoError(t, err)
	assert.Len(t, variations, 2)
}
