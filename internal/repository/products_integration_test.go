//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewProductRepository(setupTestDB(t))

	parent := model.Product{ID: 100, Type: model.ProductTypeVariable, Name: "T-Shirt", Price: decimal.RequireFromString("25"), CategoryIDs: []int64{60}}
	small := model.Product{ID: 102, ParentID: 100, Type: model.ProductTypeVariation, Name: "T-Shirt / S", Price: decimal.RequireFromString("22.50")}
	large := model.Product{ID: 101, ParentID: 100, Type: model.ProductTypeVariation, Name: "T-Shirt / L", Price: decimal.RequireFromString("27")}

	for _, p := range []model.Product{parent, small, large} {
		_, err := repo.Upsert(ctx, p)
		require.NoError(t, err)
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, 102)
		require.NoError(t, err)
		assert.Equal(t, int64(100), got.ParentID)
		assert.True(t, got.IsVariation())
		assert.True(t, decimal.RequireFromString("22.5").Equal(got.Price))
		assert.False(t, got.UpdatedAt.IsZero())
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		parent.Price = decimal.RequireFromString("30")
		parent.CategoryIDs = []int64{60, 61}
		_, err := repo.Upsert(ctx, parent)
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, 100)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(30).Equal(got.Price))
		assert.Equal(t, []int64{60, 61}, got.CategoryIDs)
	})

	t.Run("list variations by parent", func(t *testing.T) {
		variations, err := repo.ListByParent(ctx, 100)
		require.NoError(t, err)
		require.Len(t, variations, 2)
		assert.Equal(t, int64(101), variations[0].ID)
		assert.Equal(t, int64(102), variations[1].ID)
	})
}
