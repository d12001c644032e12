package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockRenderer struct {
	mock.Mock
}

func NewMockRenderer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRenderer {
	m := &MockRenderer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRenderer) Render(ctx context.Context, url string) (string, error) {
	ret := m.Called(ctx, url)
	return ret.String(0), ret.Error(1)
}

type MockModelProvider struct {
	mock.Mock
}

func NewMockModelProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockModelProvider {
	m := &MockModelProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockModelProvider) Complete(ctx context.Context, prompt string) (string, error) {
	ret := m.Called(ctx, prompt)
	return ret.String(0), ret.Error(1)
}

func (m *MockModelProvider) Name() string {
	return "mock"
}
