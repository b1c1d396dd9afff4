// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/tier-pricing-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockTierCalculator struct {
	mock.Mock
}

func NewMockTierCalculator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTierCalculator {
	m := &MockTierCalculator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTierCalculator) Calculate(cart model.Cart) model.PricedCart {
	args := m.Called(cart)
	return args.Get(0).(model.PricedCart)
}

func (m *MockTierCalculator) CalculateWithRules(cart model.Cart, rules model.Rules) (model.PricedCart, error) {
	args := m.Called(cart, rules)
	return args.Get(0).(model.PricedCart), args.Error(1)
}

func (m *MockTierCalculator) Rules() model.Rules {
	args := m.Called()
	return args.Get(0).(model.Rules)
}

func (m *MockTierCalculator) UpdateRules(rules model.Rules) error {
	args := m.Called(rules)
	return args.Error(0)
}

func (m *MockTierCalculator) InvalidateCache() {
	m.Called()
}
