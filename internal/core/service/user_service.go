package service

import (
	"context"

	"github.com/learnly/course-platform/internal/core/domain"
	"github.com/learnly/course-platform/internal/core/ports"
)

// UserService implements the admin account operations.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// ChangeRole updates a user's stored role. Tokens already issued keep their
// embedded role until they expire or are reissued; only the me endpoint and
// future logins observe the change immediately.
func (s *UserService) ChangeRole(ctx context.Context, id, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	return s.repo.UpdateRole(ctx, id, role)
}
