package ports

import (
	"context"

	"github.com/learnly/course-platform/internal/core/domain"
)

// UserRepository is the credential store. Uniqueness of username and email
// is enforced by the store itself (unique indexes); the service-level
// existence checks are advisory only and racy under concurrent registration.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
}
