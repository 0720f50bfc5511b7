package ports

import (
	"context"

	"github.com/bookbuddy/library-api/internal/core/domain"
)

// UserRepository defines persistence for the credential store. Uniqueness of
// username and email is enforced at write time: Create and Update return
// domain.ErrUserExists on a duplicate.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns the user including the password hash; it is the
	// only read path that exposes the hash.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns all users sorted by creation time, newest first.
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
