package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/repo"
)

// UserService provisions users from the identity a trusted proxy asserts.
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// Provision returns the user called username, creating it on first sight.
// Returns domain.ErrValidation for a blank username.
func (s *UserService) Provision(ctx context.Context, username, email string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, domain.FieldErrors{"username": "is required"}
	}
	result, err := s.users.Provision(ctx, username, strings.TrimSpace(email))
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Provision: %w", err)
	}
	return result, nil
}
