package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
	"github.com/bookbuddy/library-api/internal/pkg/password"
)

const minResetPasswordLen = 6

// UserService implements super-admin user management, including the
// self-protection guard: the acting super-admin can never demote or delete
// their own account, while remaining free to edit any other user.
type UserService struct {
	repo   ports.UserRepository
	hasher password.Hasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher password.Hasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
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

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// Update applies profile changes to the target user. A role change on the
// actor's own record away from their current role is refused; the comparison
// is by identity, not by role, so editing other super-admins stays allowed.
func (s *UserService) Update(ctx context.Context, actorID, targetID string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if input.Role != "" && !input.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}
	if user.ID == actorID && input.Role != "" && input.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrSelfDemotion
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Role != "" {
		user.Role = input.Role
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	return updated, nil
}

// ResetPassword sets a new password for the target user. Admin-driven resets
// carry a weaker 6-character minimum than registration's strong rule; the two
// rules are intentionally distinct.
func (s *UserService) ResetPassword(ctx context.Context, id, pass string) error {
	if len(pass) < minResetPasswordLen {
		return domain.ErrWeakPassword
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Msg("password reset")
	return nil
}

// Delete removes the target user unless it is the actor's own account.
func (s *UserService) Delete(ctx context.Context, actorID, targetID string) error {
	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if user.ID == actorID {
		return domain.ErrSelfDeletion
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", targetID).Msg("user deleted")
	return nil
}
