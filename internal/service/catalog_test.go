package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/mocks"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func shopCatalog() *StaticCatalog {
	return NewStaticCatalog(
		model.Product{ID: 10, Type: model.ProductTypeSimple, Price: dec("100"), CategoryIDs: []int64{60}},
		model.Product{ID: 20, Type: model.ProductTypeVariable, Price: dec("40"), CategoryIDs: []int64{60, 15}},
		model.Product{ID: 21, ParentID: 20, Type: model.ProductTypeVariation, Price: dec("45"), CategoryIDs: []int64{99}},
		model.Product{ID: 30, Type: model.ProductTypeSimple, Price: dec("8"), CategoryIDs: []int64{15}},
		model.Product{ID: 41, ParentID: 40, Type: model.ProductTypeVariation, Price: dec("5")},
	)
}

func TestResolveLine(t *testing.T) {
	inlinePrice := dec("12.5")

	tests := []struct {
		name       string
		catalog    Catalog
		line       model.CartLine
		wantID     int64
		wantParent int64
		wantPrice  string
		wantCats   []int64
		wantErr    error
	}{
		{
			name:      "simple product from catalog",
			catalog:   shopCatalog(),
			line:      model.CartLine{Key: "a", ProductID: 10, Quantity: 2},
			wantID:    10,
			wantPrice: "100",
			wantCats:  []int64{60},
		},
		{
			name:       "variation uses own price and parent categories",
			catalog:    shopCatalog(),
			line:       model.CartLine{Key: "b", ProductID: 20, VariationID: 21, Quantity: 1},
			wantID:     21,
			wantParent: 20,
			wantPrice:  "45",
			wantCats:   []int64{60, 15},
		},
		{
			name:      "inline price overrides catalog",
			catalog:   shopCatalog(),
			line:      model.CartLine{Key: "c", ProductID: 10, Quantity: 1, BasePrice: &inlinePrice},
			wantID:    10,
			wantPrice: "12.5",
			wantCats:  []int64{60},
		},
		{
			name:       "fully inline line needs no catalog",
			line:       model.CartLine{Key: "d", ProductID: 5, VariationID: 6, Quantity: 1, BasePrice: &inlinePrice, CategoryIDs: []int64{60}},
			wantID:     6,
			wantParent: 5,
			wantPrice:  "12.5",
			wantCats:   []int64{60},
		},
		{
			name:    "missing data without catalog",
			line:    model.CartLine{Key: "e", ProductID: 10, Quantity: 1},
			wantErr: ErrCatalogNotConfigured,
		},
		{
			name:    "unknown product",
			catalog: shopCatalog(),
			line:    model.CartLine{Key: "f", ProductID: 404, Quantity: 1},
			wantErr: ErrProductNotFound,
		},
		{
			name:    "variation with unknown parent",
			catalog: shopCatalog(),
			line:    model.CartLine{Key: "g", ProductID: 41, Quantity: 1},
			wantErr: ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := ResolveLine(context.Background(), tt.catalog, model.DefaultQuantityLimits(), tt.line)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.line.Key, item.Key)
			assert.Equal(t, tt.wantID, item.ProductID)
			assert.Equal(t, tt.wantParent, item.ParentID)
			assert.True(t, dec(tt.wantPrice).Equal(item.BasePrice), "price %s", item.BasePrice)
			assert.Equal(t, tt.wantCats, item.CategoryIDs)
			assert.Equal(t, tt.line.Quantity, item.Quantity)
		})
	}
}

func TestResolveCart_StopsAtFirstError(t *testing.T) {
	_, err := ResolveCart(context.Background(), shopCatalog(), model.DefaultQuantityLimits(), []model.CartLine{
		{Key: "a", ProductID: 10, Quantity: 1},
		{Key: "b", ProductID: 404, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestResolveCart_QuantityLimits(t *testing.T) {
	limits := model.QuantityLimits{MaxLine: 5, MaxCart: 8}

	tests := []struct {
		name    string
		lines   []model.CartLine
		wantKey string
	}{
		{
			name:    "line over limit is rejected before catalog lookup",
			lines:   []model.CartLine{{Key: "a", ProductID: 404, Quantity: 6}},
			wantKey: "a",
		},
		{
			name: "cart total over limit",
			lines: []model.CartLine{
				{Key: "a", ProductID: 10, Quantity: 5},
				{Key: "b", ProductID: 30, Quantity: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveCart(context.Background(), shopCatalog(), limits, tt.lines)
			var lerr *model.QuantityLimitError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.wantKey, lerr.Key)
		})
	}
}

func TestStaticCatalog_Put(t *testing.T) {
	c := NewStaticCatalog()
	_, err := c.Product(context.Background(), 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	c.Put(model.Product{ID: 1, Price: dec("3")})
	p, err := c.Product(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, dec("3").Equal(p.Price))
}

func TestRepositoryCatalog(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockProductRepository(t)
	repo.On("GetByID", mock.Anything, int64(10)).Return(&model.Product{ID: 10, Price: dec("100")}, nil)
	repo.On("GetByID", mock.Anything, int64(11)).Return(nil, repository.ErrNotFound)
	repo.On("GetByID", mock.Anything, int64(12)).Return(nil, errors.New("connection reset"))

	c := NewRepositoryCatalog(repo)

	p, err := c.Product(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)

	_, err = c.Product(ctx, 11)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = c.Product(ctx, 12)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}
