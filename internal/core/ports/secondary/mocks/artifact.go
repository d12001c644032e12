package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gitlab.com/pagetest.net/internal/domain"
)

type MockArtifactStore struct {
	mock.Mock
}

func NewMockArtifactStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockArtifactStore {
	m := &MockArtifactStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockArtifactStore) Exists(key string) bool {
	ret := m.Called(key)
	return ret.Bool(0)
}

func (m *MockArtifactStore) Read(key string) (string, error) {
	ret := m.Called(key)
	return ret.String(0), ret.Error(1)
}

func (m *MockArtifactStore) Write(key string, script string) error {
	ret := m.Called(key, script)
	return ret.Error(0)
}

func (m *MockArtifactStore) Path(key string) string {
	ret := m.Called(key)
	return ret.String(0)
}

func (m *MockArtifactStore) Resolve(path string) (string, error) {
	ret := m.Called(path)
	return ret.String(0), ret.Error(1)
}

func (m *MockArtifactStore) Dir() string {
	ret := m.Called()
	return ret.String(0)
}

type MockArtifactCatalog struct {
	mock.Mock
}

func NewMockArtifactCatalog(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockArtifactCatalog {
	m := &MockArtifactCatalog{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockArtifactCatalog) Record(ctx context.Context, artifact *domain.TestArtifact) error {
	ret := m.Called(ctx, artifact)
	return ret.Error(0)
}

func (m *MockArtifactCatalog) Get(ctx context.Context, key string) (*domain.TestArtifact, error) {
	ret := m.Called(ctx, key)
	var a *domain.TestArtifact
	if v := ret.Get(0); v != nil {
		a = v.(*domain.TestArtifact)
	}
	return a, ret.Error(1)
}

func (m *MockArtifactCatalog) List(ctx context.Context, limit int) ([]*domain.TestArtifact, error) {
	ret := m.Called(ctx, limit)
	var list []*domain.TestArtifact
	if v := ret.Get(0); v != nil {
		list = v.([]*domain.TestArtifact)
	}
	return list, ret.Error(1)
}
