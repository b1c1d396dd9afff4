// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

func NewMockCache(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCache {
	m := &MockCache{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockCache) Get(key string) (model.PricedCart, bool) {
	args := m.Called(key)
	return args.Get(0).(model.PricedCart), args.Bool(1)
}

func (m *MockCache) Set(key string, value model.PricedCart) {
	m.Called(key, value)
}

func (m *MockCache) Invalidate(key string) {
	m.Called(key)
}

func (m *MockCache) Clear() {
	m.Called()
}

func (m *MockCache) Stop() {
	m.Called()
}
