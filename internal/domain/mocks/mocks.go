// Package mocks provides testify mocks of the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"colfmt.dev/pkg/colfmt/internal/domain"
	"colfmt.dev/pkg/colfmt/internal/domain/align"
	m "colfmt.dev/pkg/colfmt/internal/model"
)

// MockWorkflow is a mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a mock whose expectations are asserted on cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mock := &MockWorkflow{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// Align provides a mock function.
func (_m *MockWorkflow) Align(ctx context.Context, args domain.FormatArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// Mark provides a mock function.
func (_m *MockWorkflow) Mark(ctx context.Context, args domain.FormatArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// Unmark provides a mock function.
func (_m *MockWorkflow) Unmark(ctx context.Context, args domain.FormatArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// Estimate provides a mock function.
func (_m *MockWorkflow) Estimate(ctx context.Context, args domain.EstimateArgs) error {
	return _m.Called(ctx, args).Error(0)
}

// MockFormatter is a mock of domain.Formatter.
type MockFormatter struct {
	mock.Mock
}

// NewMockFormatter creates a mock whose expectations are asserted on cleanup.
func NewMockFormatter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFormatter {
	mock := &MockFormatter{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}

// Align provides a mock function.
func (_m *MockFormatter) Align(code string, opts align.Options) (domain.Output, error) {
	args := _m.Called(code, opts)

	out, _ := args.Get(0).(domain.Output)

	return out, args.Error(1)
}

// Mark provides a mock function.
func (_m *MockFormatter) Mark(code string, threshold float64) (domain.Output, error) {
	args := _m.Called(code, threshold)

	out, _ := args.Get(0).(domain.Output)

	return out, args.Error(1)
}

// Unmark provides a mock function.
func (_m *MockFormatter) Unmark(code string) domain.Output {
	out, _ := _m.Called(code).Get(0).(domain.Output)

	return out
}

// Estimate provides a mock function.
func (_m *MockFormatter) Estimate(code string, threshold float64) (domain.Counts, error) {
	args := _m.Called(code, threshold)

	counts, _ := args.Get(0).(domain.Counts)

	return counts, args.Error(1)
}

// ApplyOverrides provides a mock function.
func (_m *MockFormatter) ApplyOverrides(overrides []m.MatrixOverride) error {
	return _m.Called(overrides).Error(0)
}

var (
	_ domain.Workflow  = (*MockWorkflow)(nil)
	_ domain.Formatter = (*MockFormatter)(nil)
)
