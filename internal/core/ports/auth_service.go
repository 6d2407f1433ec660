package ports

import (
	"context"

	"github.com/learnly/course-platform/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	Logout(ctx context.Context, rawToken string) error
}

// UserService covers the admin-facing account operations.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	ChangeRole(ctx context.Context, id, role string) (*domain.User, error)
}
