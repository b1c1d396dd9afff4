//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func flatRules(threshold int, amount string) model.Rules {
	return model.Rules{
		Tiers:         []model.Tier{{Threshold: threshold, Amount: decimal.RequireFromString(amount)}},
		Mode:          model.ModeFlat,
		CategoryIDs:   []int64{60},
		NegativePrice: model.NegativePriceClamp,
	}
}

func TestTierConfigRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewTierConfigRepository(setupTestDB(t))

	t.Run("no active config", func(t *testing.T) {
		cfg, err := repo.GetActive(ctx)
		require.NoError(t, err)
		assert.Nil(t, cfg)
	})

	first, err := repo.Create(ctx, flatRules(3, "20"), "alice")
	require.NoError(t, err)

	t.Run("create activates the new config", func(t *testing.T) {
		assert.True(t, first.Active)
		assert.Equal(t, 1, first.Version)
		assert.Equal(t, "alice", first.CreatedBy)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, first.ID, active.ID)

		rules, err := active.Rules()
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(20).Equal(rules.Tiers[0].Amount))
	})

	second, err := repo.Create(ctx, flatRules(5, "12.5"), "bob")
	require.NoError(t, err)

	t.Run("create supersedes the previous config", func(t *testing.T) {
		assert.Equal(t, 2, second.Version)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.ID, active.ID)

		history, err := repo.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, second.ID, history[0].ID)
		assert.False(t, history[1].Active)
	})

	t.Run("list honours the limit", func(t *testing.T) {
		history, err := repo.List(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("update bumps the version in place", func(t *testing.T) {
		updated, err := repo.Update(ctx, second.ID, flatRules(4, "10"), "carol")
		require.NoError(t, err)
		assert.Equal(t, second.Version+1, updated.Version)
		assert.Equal(t, "carol", updated.UpdatedBy)
		assert.Equal(t, []TierDocument{{Threshold: 4, Amount: "10"}}, updated.Tiers)
		assert.True(t, updated.Active)
	})

	t.Run("update of an unknown id", func(t *testing.T) {
		_, err := repo.Update(ctx, primitive.NewObjectID(), flatRules(3, "20"), "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
