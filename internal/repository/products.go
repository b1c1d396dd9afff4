package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductDocument is the stored form of a catalog product.
type ProductDocument struct {
	ID          int64     `bson:"_id"`
	ParentID    int64     `bson:"parent_id,omitempty"`
	Type        string    `bson:"type"`
	Name        string    `bson:"name,omitempty"`
	Price       string    `bson:"price"`
	CategoryIDs []int64   `bson:"category_ids"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func productDocument(p model.Product) ProductDocument {
	return ProductDocument{
		ID:          p.ID,
		ParentID:    p.ParentID,
		Type:        string(p.Type),
		Name:        p.Name,
		Price:       p.Price.String(),
		CategoryIDs: p.CategoryIDs,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Product converts the document into the domain type.
func (d ProductDocument) Product() (*model.Product, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return nil, err
	}
	return &model.Product{
		ID:          d.ID,
		ParentID:    d.ParentID,
		Type:        model.ProductType(d.Type),
		Name:        d.Name,
		Price:       price,
		CategoryIDs: d.CategoryIDs,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// ProductRepository stores catalog products keyed by their shop id.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *MongoDB) *ProductRepository {
	return &ProductRepository{collection: db.Products}
}

// GetByID returns the product with the given id or ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var doc ProductDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.Product()
}

// Upsert inserts or replaces the product and returns the stored version.
func (r *ProductRepository) Upsert(ctx context.Context, product model.Product) (*model.Product, error) {
	product.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	doc := productDocument(product)

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": product.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByParent returns the variations of a variable product ordered by id.
func (r *ProductRepository) ListByParent(ctx context.Context, parentID int64) ([]model.Product, error) {
	cursor, err := r.collection.Find(ctx,
		bson.M{"parent_id": parentID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []ProductDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]model.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.Product()
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}
