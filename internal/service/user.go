package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/panda-market/internal/domain"
	"github.com/pkordes/panda-market/internal/repo"
)

// UserService implements business logic for the /users/me endpoints.
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// Get returns a user by ID. The Password field still holds the hash; the
// handler strips it before serializing.
func (s *UserService) Get(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Get: %w", err)
	}
	return user, nil
}

// UpdateProfile applies nickname and/or image changes. At least one field
// must be provided.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, nickname, image *string) (domain.User, error) {
	if nickname == nil && image == nil {
		return domain.User{}, fmt.Errorf("%w: at least one of nickname or image is required", domain.ErrValidation)
	}
	if nickname != nil && strings.TrimSpace(*nickname) == "" {
		return domain.User{}, fmt.Errorf("%w: nickname must not be empty", domain.ErrValidation)
	}
	user, err := s.users.UpdateProfile(ctx, id, nickname, image)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.UpdateProfile: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one. A wrong current password maps to domain.ErrUnauthorized.
func (s *UserService) ChangePassword(ctx context.Context, id int64, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("%w: current and new password are required", domain.ErrValidation)
	}
	if len(next) < 6 {
		return fmt.Errorf("%w: new password must be at least 6 characters", domain.ErrValidation)
	}
	if current == next {
		return fmt.Errorf("%w: new password must differ from the current one", domain.ErrValidation)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.UserService.ChangePassword: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return fmt.Errorf("service.UserService.ChangePassword: wrong password: %w", domain.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return fmt.Errorf("service.UserService.ChangePassword: hash: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
		return fmt.Errorf("service.UserService.ChangePassword: %w", err)
	}
	return nil
}
