package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gitlab.com/pagetest.net/internal/domain"
)

type MockTestRunner struct {
	mock.Mock
}

func NewMockTestRunner(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTestRunner {
	m := &MockTestRunner{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTestRunner) Run(ctx context.Context, scriptPath string) (*domain.ProcessResult, error) {
	ret := m.Called(ctx, scriptPath)
	var res *domain.ProcessResult
	if v := ret.Get(0); v != nil {
		res = v.(*domain.ProcessResult)
	}
	return res, ret.Error(1)
}

type MockRunRepository struct {
	mock.Mock
}

func NewMockRunRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRunRepository {
	m := &MockRunRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockRunRepository) SaveRun(ctx context.Context, run *domain.RunRecord) error {
	ret := m.Called(ctx, run)
	return ret.Error(0)
}

func (m *MockRunRepository) GetRun(ctx context.Context, id uuid.UUID) (*domain.RunRecord, error) {
	ret := m.Called(ctx, id)
	var run *domain.RunRecord
	if v := ret.Get(0); v != nil {
		run = v.(*domain.RunRecord)
	}
	return run, ret.Error(1)
}

func (m *MockRunRepository) ListRuns(ctx context.Context, artifactKey string, limit int) ([]*domain.RunRecord, error) {
	ret := m.Called(ctx, artifactKey, limit)
	var runs []*domain.RunRecord
	if v := ret.Get(0); v != nil {
		runs = v.([]*domain.RunRecord)
	}
	return runs, ret.Error(1)
}

type MockKeyLocker struct {
	mock.Mock
}

func NewMockKeyLocker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockKeyLocker {
	m := &MockKeyLocker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockKeyLocker) Acquire(ctx context.Context, key string) (func(), error) {
	ret := m.Called(ctx, key)
	release := func() {}
	if v := ret.Get(0); v != nil {
		release = v.(func())
	}
	return release, ret.Error(1)
}
