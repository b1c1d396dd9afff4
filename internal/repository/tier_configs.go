package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TierDocument stores one tier. Amount is kept as a decimal string to avoid float rounding.
type TierDocument struct {
	Threshold int    `bson:"threshold" json:"threshold"`
	Amount    string `bson:"amount" json:"amount"`
}

// TierConfig is a versioned tier configuration document. Only one is active at a time.
type TierConfig struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id" swaggertype:"string"`
	Tiers         []TierDocument     `bson:"tiers" json:"tiers"`
	Mode          string             `bson:"mode" json:"mode"`
	CategoryIDs   []int64            `bson:"category_ids" json:"category_ids"`
	NegativePrice string             `bson:"negative_price_policy,omitempty" json:"negative_price_policy,omitempty"`
	Active        bool               `bson:"active" json:"active"`
	Version       int                `bson:"version" json:"version"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
	CreatedBy     string             `bson:"created_by,omitempty" json:"created_by,omitempty"`
	UpdatedBy     string             `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
}

// NewTierConfig converts rules into an inactive, unsaved document.
func NewTierConfig(rules model.Rules) TierConfig {
	tiers := make([]TierDocument, len(rules.Tiers))
	for i, t := range rules.Tiers {
		tiers[i] = TierDocument{Threshold: t.Threshold, Amount: t.Amount.String()}
	}
	return TierConfig{
		Tiers:         tiers,
		Mode:          string(rules.Mode),
		CategoryIDs:   append([]int64(nil), rules.CategoryIDs...),
		NegativePrice: string(rules.NegativePrice),
	}
}

// Rules converts the document back into validated rules.
func (c *TierConfig) Rules() (model.Rules, error) {
	tiers := make([]model.Tier, len(c.Tiers))
	for i, t := range c.Tiers {
		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			return model.Rules{}, &model.ConfigurationError{Field: "tiers", Message: "stored amount " + t.Amount + " is not a decimal"}
		}
		tiers[i] = model.Tier{Threshold: t.Threshold, Amount: amount}
	}

	rules := model.Rules{
		Tiers:         tiers,
		Mode:          model.Mode(c.Mode),
		CategoryIDs:   c.CategoryIDs,
		NegativePrice: model.NegativePricePolicy(c.NegativePrice),
	}
	if err := rules.Validate(); err != nil {
		return model.Rules{}, err
	}
	return rules, nil
}

// TierConfigRepository stores tier configurations.
type TierConfigRepository struct {
	collection *mongo.Collection
}

// NewTierConfigRepository creates a tier config repository.
func NewTierConfigRepository(db *MongoDB) *TierConfigRepository {
	return &TierConfigRepository{collection: db.TierConfigs}
}

// GetActive returns the active configuration, or nil when none exists.
func (r *TierConfigRepository) GetActive(ctx context.Context) (*TierConfig, error) {
	var cfg TierConfig
	err := r.collection.FindOne(ctx, bson.M{"active": true}).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Create deactivates the current configuration and stores rules as the new active one.
// The version continues from the latest stored configuration.
func (r *TierConfigRepository) Create(ctx context.Context, rules model.Rules, createdBy string) (*TierConfig, error) {
	version := 1
	var latest TierConfig
	err := r.collection.FindOne(ctx, bson.M{}, options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})).Decode(&latest)
	switch {
	case err == nil:
		version = latest.Version + 1
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, err
	}

	ts := time.Now().UTC()
	if _, err := r.collection.UpdateMany(ctx,
		bson.M{"active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": ts}},
	); err != nil {
		return nil, err
	}

	cfg := NewTierConfig(rules)
	cfg.ID = primitive.NewObjectID()
	cfg.Active = true
	cfg.Version = version
	cfg.CreatedAt = ts
	cfg.UpdatedAt = ts
	cfg.CreatedBy = createdBy

	if _, err := r.collection.InsertOne(ctx, cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Update replaces the rules of an existing configuration in place and bumps its version.
func (r *TierConfigRepository) Update(ctx context.Context, id primitive.ObjectID, rules model.Rules, updatedBy string) (*TierConfig, error) {
	doc := NewTierConfig(rules)
	set := bson.M{
		"tiers":                 doc.Tiers,
		"mode":                  doc.Mode,
		"category_ids":          doc.CategoryIDs,
		"negative_price_policy": doc.NegativePrice,
		"updated_at":            time.Now().UTC(),
	}
	if updatedBy != "" {
		set["updated_by"] = updatedBy
	}

	var cfg TierConfig
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&cfg)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// List returns configurations, newest first. A non-positive limit returns all.
func (r *TierConfigRepository) List(ctx context.Context, limit int) ([]TierConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	configs := make([]TierConfig, 0)
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}
