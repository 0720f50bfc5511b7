package ports

import (
	"context"

	"github.com/bookbuddy/library-api/internal/core/domain"
)

// CreateUserInput carries the fields for admin-driven user creation.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput carries optional profile mutations; zero values leave the
// corresponding field untouched.
type UpdateUserInput struct {
	Username string
	Email    string
	Role     domain.Role
}

// UserService implements super-admin user management. Mutations take the
// acting user's id so the self-protection guard can compare it against the
// target: a super-admin may edit other super-admins freely but can never
// demote or delete their own account.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actorID, targetID string, input UpdateUserInput) (*domain.User, error)
	ResetPassword(ctx context.Context, id, password string) error
	Delete(ctx context.Context, actorID, targetID string) error
}
