package ports

import (
	"context"

	"github.com/bookbuddy/library-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// LoginResult is returned on a successful login: the public projection of the
// user plus both tokens.
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// AuthService establishes and verifies caller identity via signed,
// time-bounded tokens.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Refresh verifies a refresh token and mints a new access token. Refresh
	// tokens are not rotated; the presented one stays valid until expiry.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	// VerifyAccessToken returns the subject user id, domain.ErrTokenExpired
	// for an expired token, or domain.ErrInvalidToken for anything else.
	VerifyAccessToken(token string) (string, error)
	VerifyRefreshToken(token string) (string, error)

	// UserByID resolves the identity attached to a verified token.
	UserByID(ctx context.Context, id string) (*domain.User, error)
}
