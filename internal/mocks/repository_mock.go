// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockTierConfigRepository struct {
	mock.Mock
}

func NewMockTierConfigRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTierConfigRepository {
	m := &MockTierConfigRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTierConfigRepository) GetActive(ctx context.Context) (*repository.TierConfig, error) {
	args := m.Called(ctx)
	cfg, _ := args.Get(0).(*repository.TierConfig)
	return cfg, args.Error(1)
}

func (m *MockTierConfigRepository) Create(ctx context.Context, rules model.Rules, createdBy string) (*repository.TierConfig, error) {
	args := m.Called(ctx, rules, createdBy)
	cfg, _ := args.Get(0).(*repository.TierConfig)
	return cfg, args.Error(1)
}

func (m *MockTierConfigRepository) Update(ctx context.Context, id primitive.ObjectID, rules model.Rules, updatedBy string) (*repository.TierConfig, error) {
	args := m.Called(ctx, id, rules, updatedBy)
	cfg, _ := args.Get(0).(*repository.TierConfig)
	return cfg, args.Error(1)
}

func (m *MockTierConfigRepository) List(ctx context.Context, limit int) ([]repository.TierConfig, error) {
	args := m.Called(ctx, limit)
	configs, _ := args.Get(0).([]repository.TierConfig)
	return configs, args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func NewMockProductRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProductRepository {
	m := &MockProductRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) Upsert(ctx context.Context, product model.Product) (*model.Product, error) {
	args := m.Called(ctx, product)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockProductRepository) ListByParent(ctx context.Context, parentID int64) ([]model.Product, error) {
	args := m.Called(ctx, parentID)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

type MockLogsRepository struct {
	mock.Mock
}

func NewMockLogsRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogsRepository {
	m := &MockLogsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLogsRepository) Create(ctx context.Context, entry *repository.LogEntryDocument) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLogsRepository) CreateMany(ctx context.Context, entries []*repository.LogEntryDocument) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLogsRepository) Query(ctx context.Context, opts repository.LogQueryOptions) ([]*repository.LogEntryDocument, error) {
	args := m.Called(ctx, opts)
	docs, _ := args.Get(0).([]*repository.LogEntryDocument)
	return docs, args.Error(1)
}

func (m *MockLogsRepository) Count(ctx context.Context, opts repository.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}
