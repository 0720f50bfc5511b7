package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
	"github.com/bookbuddy/library-api/internal/pkg/password"
)

// TokenConfig holds the signing material and lifetimes for both token kinds.
// The access and refresh secrets must be distinct so a refresh token can
// never pass as an access token.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// AuthService implements token issuance, verification, login and refresh.
type AuthService struct {
	repo   ports.UserRepository
	hasher password.Hasher
	tokens TokenConfig
	logger zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.UserRepository, hasher password.Hasher, tokens TokenConfig, logger zerolog.Logger) *AuthService {
	if tokens.AccessTTL <= 0 {
		tokens.AccessTTL = 15 * time.Minute
	}
	if tokens.RefreshTTL <= 0 {
		tokens.RefreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Register creates a new account with a hashed password. Role defaults to
// admin when unset.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleAdmin
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies email+password and issues both tokens. An unknown email and
// a wrong password produce the identical error so callers cannot probe for
// account existence.
func (s *AuthService) Login(ctx context.Context, email, pass string) (*ports.LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")

	return &ports.LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh verifies the refresh token, confirms the subject still exists, and
// mints a fresh access token. The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		return "", err
	}

	return s.IssueAccessToken(userID)
}

// UserByID resolves the identity referenced by a verified token subject.
func (s *AuthService) UserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) IssueAccessToken(userID string) (string, error) {
	return s.sign(userID, s.tokens.AccessSecret, s.tokens.AccessTTL)
}

func (s *AuthService) IssueRefreshToken(userID string) (string, error) {
	return s.sign(userID, s.tokens.RefreshSecret, s.tokens.RefreshTTL)
}

func (s *AuthService) VerifyAccessToken(token string) (string, error) {
	return s.verify(token, s.tokens.AccessSecret)
}

func (s *AuthService) VerifyRefreshToken(token string) (string, error) {
	return s.verify(token, s.tokens.RefreshSecret)
}

func (s *AuthService) sign(userID, secret string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// verify checks signature, algorithm and expiry. Expiry is reported as
// domain.ErrTokenExpired; every other failure collapses to
// domain.ErrInvalidToken.
func (s *AuthService) verify(token, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
