package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cleanreports/internal/domain"
	"cleanreports/internal/service"
)

// MockListingService is a mock implementation of service.ListingService.
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) Resolve(ctx context.Context, req domain.FilterRequest) (*service.Listing, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Listing), args.Error(1)
}

func (m *MockListingService) DistinctStores(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// ForEachBatch feeds the configured batches to fn, then returns the configured error.
func (m *MockListingService) ForEachBatch(ctx context.Context, req domain.FilterRequest, fn func([]domain.Report) error) error {
	args := m.Called(ctx, req, fn)
	if batches, ok := args.Get(0).([][]domain.Report); ok {
		for _, b := range batches {
			if err := fn(b); err != nil {
				return err
			}
		}
	}
	return args.Error(1)
}

func (m *MockListingService) PageSize() int {
	args := m.Called()
	return args.Int(0)
}
