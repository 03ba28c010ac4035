package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cleanreports/internal/domain"
)

// MockReportRepo is a mock implementation of port.ReportRepository.
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Count(ctx context.Context, preds []domain.Predicate) (int, error) {
	args := m.Called(ctx, preds)
	return args.Int(0), args.Error(1)
}

func (m *MockReportRepo) Query(ctx context.Context, preds []domain.Predicate, order []domain.OrderBy, offset, limit int) ([]domain.Report, error) {
	args := m.Called(ctx, preds, order, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepo) StoreFields(ctx context.Context, preds []domain.Predicate) ([]domain.StoreNames, error) {
	args := m.Called(ctx, preds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoreNames), args.Error(1)
}
