package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPhotoSigner is a mock implementation of port.PhotoURLSigner.
type MockPhotoSigner struct {
	mock.Mock
}

func (m *MockPhotoSigner) GetPresignedURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
