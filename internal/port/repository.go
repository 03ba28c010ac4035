package port

import (
	"context"

	"github.com/google/uuid"

	"cleanreports/internal/domain"
)

// UserRepository defines the contract for dashboard user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
