package ports

import (
	"context"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
)

// AuthService covers signup, login, and bearer-token authentication.
type AuthService interface {
	// Signup creates a user and issues a token for it.
	Signup(ctx context.Context, username, email, password, role string) (string, *domain.User, error)
	// Login verifies credentials and issues a token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Authenticate verifies a bearer token and resolves its subject to a
	// persisted user. Token defects and unknown subjects surface as
	// domain.ErrUnauthenticated; storage failures propagate unchanged.
	Authenticate(ctx context.Context, tokenString string) (*domain.User, error)
}
