// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/guttosm/tier-pricing-service/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockCatalog struct {
	mock.Mock
}

func NewMockCatalog(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCatalog {
	m := &MockCatalog{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCatalog) Product(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

type MockTierConfigService struct {
	mock.Mock
}

func NewMockTierConfigService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTierConfigService {
	m := &MockTierConfigService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTierConfigService) GetActive(ctx context.Context) (*repository.TierConfig, error) {
	args := m.Called(ctx)
	cfg, _ := args.Get(0).(*repository.TierConfig)
	return cfg, args.Error(1)
}

func (m *MockTierConfigService) ActiveRules(ctx context.Context) (model.Rules, bool, error) {
	args := m.Called(ctx)
	rules, _ := args.Get(0).(model.Rules)
	return rules, args.Bool(1), args.Error(2)
}

func (m *MockTierConfigService) Create(ctx context.Context, rules model.Rules, createdBy string) (*repository.TierConfig, error) {
	args := m.Called(ctx, rules, createdBy)
	cfg, _ := args.Get(0).(*repository.TierConfig)
	return cfg, args.Error(1)
}

func (m *MockTierConfigService) Update(ctx context.Context, id primitive.ObjectID, rules model.Rules, updatedBy string) (*repository.TierConfig, error) {
	args := m.Called(ctx, id, rules, updatedBy)
	cfg, _ := args.Get(0).(*repository.TierConfig)
	return cfg, args.Error(1)
}

func (m *MockTierConfigService) List(ctx context.Context, limit int) ([]repository.TierConfig, error) {
	args := m.Called(ctx, limit)
	configs, _ := args.Get(0).([]repository.TierConfig)
	return configs, args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func NewMockProductService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProductService {
	m := &MockProductService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProductService) Get(ctx context.Context, id int64) (*model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockProductService) Upsert(ctx context.Context, product model.Product) (*model.Product, error) {
	args := m.Called(ctx, product)
	p, _ := args.Get(0).(*model.Product)
	return p, args.Error(1)
}

func (m *MockProductService) Variations(ctx context.Context, parentID int64) ([]model.Product, error) {
	args := m.Called(ctx, parentID)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

type MockLoggingService struct {
	mock.Mock
}

func NewMockLoggingService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLoggingService {
	m := &MockLoggingService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLoggingService) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLoggingService) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockLoggingService) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, opts)
	entries, _ := args.Get(0).([]model.LogEntry)
	return entries, args.Error(1)
}

func (m *MockLoggingService) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	count, _ := args.Get(0).(int64)
	return count, args.Error(1)
}
