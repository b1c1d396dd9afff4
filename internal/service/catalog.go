package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/repository"
)

var (
	// ErrProductNotFound is returned when a cart line references an unknown product.
	ErrProductNotFound = errors.New("product not found")
	// ErrCatalogNotConfigured is returned when a line needs catalog data but no catalog is wired.
	ErrCatalogNotConfigured = errors.New("catalog not configured")
)

// Catalog looks up products and variations by id.
type Catalog interface {
	Product(ctx context.Context, id int64) (*model.Product, error)
}

// StaticCatalog is an in-memory catalog, safe for concurrent use.
type StaticCatalog struct {
	mu       sync.RWMutex
	products map[int64]model.Product
}

// NewStaticCatalog creates a catalog holding products.
func NewStaticCatalog(products ...model.Product) *StaticCatalog {
	c := &StaticCatalog{products: make(map[int64]model.Product, len(products))}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

// Put adds or replaces a product.
func (c *StaticCatalog) Put(p model.Product) {
	c.mu.Lock()
	c.products[p.ID] = p
	c.mu.Unlock()
}

// Product returns a copy of the product or ErrProductNotFound.
func (c *StaticCatalog) Product(_ context.Context, id int64) (*model.Product, error) {
	c.mu.RLock()
	p, ok := c.products[id]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

// RepositoryCatalog serves products from the product repository.
type RepositoryCatalog struct {
	repo repository.ProductRepositoryInterface
}

// NewRepositoryCatalog creates a catalog backed by repo.
func NewRepositoryCatalog(repo repository.ProductRepositoryInterface) *RepositoryCatalog {
	return &RepositoryCatalog{repo: repo}
}

// Product maps repository.ErrNotFound to ErrProductNotFound.
func (c *RepositoryCatalog) Product(ctx context.Context, id int64) (*model.Product, error) {
	p, err := c.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// ResolveLine turns a raw cart line into a priced-ready line item. Quantities
// above the line limit yield a *model.QuantityLimitError.
//
// The purchased id is the variation when one is set. A variation is priced at
// its own price but is eligible through its parent's categories. Inline base
// price and categories take precedence over catalog data; the catalog is only
// consulted for what the line leaves out.
func ResolveLine(ctx context.Context, catalog Catalog, limits model.QuantityLimits, line model.CartLine) (model.LineItem, error) {
	if err := limits.CheckLine(line.Key, line.Quantity); err != nil {
		return model.LineItem{}, err
	}

	item := model.LineItem{
		Key:         line.Key,
		ProductID:   line.ProductID,
		Quantity:    line.Quantity,
		CategoryIDs: line.CategoryIDs,
	}
	if line.VariationID != 0 {
		item.ProductID = line.VariationID
		item.ParentID = line.ProductID
	}
	if line.BasePrice != nil {
		item.BasePrice = *line.BasePrice
	}

	if line.BasePrice != nil && line.CategoryIDs != nil {
		return item, nil
	}
	if catalog == nil {
		return model.LineItem{}, ErrCatalogNotConfigured
	}

	product, err := catalog.Product(ctx, item.ProductID)
	if err != nil {
		return model.LineItem{}, fmt.Errorf("line %q: %w", line.Key, err)
	}
	if line.BasePrice == nil {
		item.BasePrice = product.Price
	}
	if line.CategoryIDs != nil {
		return item, nil
	}

	if !product.IsVariation() {
		item.CategoryIDs = product.CategoryIDs
		return item, nil
	}

	item.ParentID = product.ParentID
	parent, err := catalog.Product(ctx, product.ParentID)
	if err != nil {
		return model.LineItem{}, fmt.Errorf("line %q parent %d: %w", line.Key, product.ParentID, err)
	}
	item.CategoryIDs = parent.CategoryIDs
	return item, nil
}

// ResolveCart resolves every line in order, then checks the cart total.
func ResolveCart(ctx context.Context, catalog Catalog, limits model.QuantityLimits, lines []model.CartLine) (model.Cart, error) {
	cart := model.Cart{Items: make([]model.LineItem, 0, len(lines))}
	for _, line := range lines {
		item, err := ResolveLine(ctx, catalog, limits, line)
		if err != nil {
			return model.Cart{}, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := limits.Check(cart.Items); err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}
