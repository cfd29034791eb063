package ports

import (
	"context"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
)

// UserRepository defines the user-storage capability the auth core depends on.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
