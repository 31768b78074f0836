// Package mocks provides testify mocks of the controller interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"colfmt.dev/pkg/colfmt/internal/controller"
	m "colfmt.dev/pkg/colfmt/internal/model"
)

// MockUI is a mock of controller.UI.
type MockUI struct {
	mock.Mock
}

// NewMockUI creates a mock whose expectations are asserted on cleanup.
func NewMockUI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUI {
	mock := &MockUI{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// Start provides a mock function.
func (_m *MockUI) Start(ctx context.Context, options ...controller.StartOption) error {
	return _m.Called(ctx, options).Error(0)
}

// Close provides a mock function.
func (_m *MockUI) Close(ctx context.Context) {
	_m.Called(ctx)
}

// Wait provides a mock function.
func (_m *MockUI) Wait(ctx context.Context) {
	_m.Called(ctx)
}

// DisplayEstimation provides a mock function.
func (_m *MockUI) DisplayEstimation(ctx context.Context, estimates []m.Estimate, err error) error {
	return _m.Called(ctx, estimates, err).Error(0)
}

// DisplayRunInfo provides a mock function.
func (_m *MockUI) DisplayRunInfo(ctx context.Context, op m.Operation, files int, workers int) {
	_m.Called(ctx, op, files, workers)
}

// DisplayResult provides a mock function.
func (_m *MockUI) DisplayResult(ctx context.Context, result m.Result) {
	_m.Called(ctx, result)
}

// DisplayFormatted provides a mock function.
func (_m *MockUI) DisplayFormatted(ctx context.Context, result m.Result) {
	_m.Called(ctx, result)
}

// DisplaySummary provides a mock function.
func (_m *MockUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	_m.Called(ctx, summary)
}

var _ controller.UI = (*MockUI)(nil)
