// Package mocks provides testify mocks of the adapter interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"colfmt.dev/pkg/colfmt/internal/adapter"
	m "colfmt.dev/pkg/colfmt/internal/model"
)

// MockSourceFSAdapter is a mock of adapter.SourceFSAdapter.
type MockSourceFSAdapter struct {
	mock.Mock
}

// NewMockSourceFSAdapter creates a mock whose expectations are asserted on cleanup.
func NewMockSourceFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSourceFSAdapter {
	mock := &MockSourceFSAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// Get provides a mock function.
func (_m *MockSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error) {
	args := _m.Called(ctx, paths, exclude)

	sources, _ := args.Get(0).([]m.Source)

	return sources, args.Error(1)
}

// ReadFile provides a mock function.
func (_m *MockSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	args := _m.Called(path)

	content, _ := args.Get(0).([]byte)

	return content, args.Error(1)
}

// WriteFile provides a mock function.
func (_m *MockSourceFSAdapter) WriteFile(path m.Path, content []byte) error {
	return _m.Called(path, content).Error(0)
}

// HashFile provides a mock function.
func (_m *MockSourceFSAdapter) HashFile(path m.Path) (string, error) {
	args := _m.Called(path)

	return args.String(0), args.Error(1)
}

// MockCacheStore is a mock of adapter.CacheStore.
type MockCacheStore struct {
	mock.Mock
}

// NewMockCacheStore creates a mock whose expectations are asserted on cleanup.
func NewMockCacheStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCacheStore {
	mock := &MockCacheStore{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// Load provides a mock function.
func (_m *MockCacheStore) Load(path m.Path) (*adapter.Cache, error) {
	args := _m.Called(path)

	cache, _ := args.Get(0).(*adapter.Cache)

	return cache, args.Error(1)
}

// Save provides a mock function.
func (_m *MockCacheStore) Save(path m.Path, cache *adapter.Cache) error {
	return _m.Called(path, cache).Error(0)
}

// MockMatrixFileAdapter is a mock of adapter.MatrixFileAdapter.
type MockMatrixFileAdapter struct {
	mock.Mock
}

// NewMockMatrixFileAdapter creates a mock whose expectations are asserted on cleanup.
func NewMockMatrixFileAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMatrixFileAdapter {
	mock := &MockMatrixFileAdapter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// Load provides a mock function.
func (_m *MockMatrixFileAdapter) Load(path m.Path) ([]m.MatrixOverride, error) {
	args := _m.Called(path)

	overrides, _ := args.Get(0).([]m.MatrixOverride)

	return overrides, args.Error(1)
}

var (
	_ adapter.SourceFSAdapter   = (*MockSourceFSAdapter)(nil)
	_ adapter.CacheStore        = (*MockCacheStore)(nil)
	_ adapter.MatrixFileAdapter = (*MockMatrixFileAdapter)(nil)
)
