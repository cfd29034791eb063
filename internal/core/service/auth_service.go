package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/ports"
	"github.com/One-Orco/quickrent-backend/internal/pkg/password"
	"github.com/One-Orco/quickrent-backend/internal/pkg/token"
)

// LoginThrottle limits consecutive failed logins per username (Redis-backed).
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements signup, login, and token authentication.
type AuthService struct {
	repo     ports.UserRepository
	issuer   *token.Issuer
	throttle LoginThrottle
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer, throttle LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, throttle: throttle, log: log}
}

func (s *AuthService) Signup(ctx context.Context, username, email, pass, role string) (string, *domain.User, error) {
	if username == "" || email == "" || pass == "" {
		return "", nil, domain.ErrValidation
	}
	parsedRole, ok := domain.ParseRole(role)
	if !ok {
		return "", nil, domain.ErrValidation
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return "", nil, err
	}

	now := nowUTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         parsedRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	tok, err := s.issuer.Issue(created.Username, string(created.Role))
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")
	return tok, created, nil
}

func (s *AuthService) Login(ctx context.Context, username, pass string) (string, *domain.User, error) {
	if username == "" || pass == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	allowed, err := s.throttle.Allow(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, allowing attempt")
	} else if !allowed {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, err
		}
		// Unknown users and bad passwords look identical to the caller, in
		// both response and timing: burn a bcrypt comparison and count the
		// attempt exactly as a password mismatch would.
		password.Verify(pass, password.DummyHash)
		if recErr := s.throttle.RecordFailure(ctx, username); recErr != nil {
			s.log.Warn().Err(recErr).Str("username", username).Msg("failed to record login failure")
		}
		s.log.Debug().Str("username", username).Msg("login for unknown user")
		return "", nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(pass, user.PasswordHash) {
		if recErr := s.throttle.RecordFailure(ctx, username); recErr != nil {
			s.log.Warn().Err(recErr).Str("username", username).Msg("failed to record login failure")
		}
		return "", nil, domain.ErrInvalidCredentials
	}

	if resetErr := s.throttle.Reset(ctx, username); resetErr != nil {
		s.log.Warn().Err(resetErr).Str("username", username).Msg("failed to reset login throttle")
	}

	tok, err := s.issuer.Issue(user.Username, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return tok, user, nil
}

// Authenticate verifies a bearer token and resolves its subject to a persisted
// user. Token defects and unknown subjects collapse into
// domain.ErrUnauthenticated (the kinds are logged at debug); storage failures
// propagate unchanged.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.issuer.Verify(tokenString)
	if err != nil {
		s.log.Debug().Err(err).Msg("token verification failed")
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		s.log.Debug().Str("subject", claims.Subject).Msg("token subject unknown")
		return nil, domain.ErrUnauthenticated
	}

	return user, nil
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
