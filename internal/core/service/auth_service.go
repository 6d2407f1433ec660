package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/learnly/course-platform/internal/core/domain"
	"github.com/learnly/course-platform/internal/core/ports"
)

// AuthService implements registration, login, identity lookup and logout.
type AuthService struct {
	repo    ports.UserRepository
	codec   ports.TokenCodec
	revoker ports.TokenRevoker // nil disables revocation
}

func NewAuthService(repo ports.UserRepository, codec ports.TokenCodec, revoker ports.TokenRevoker) *AuthService {
	return &AuthService{repo: repo, codec: codec, revoker: revoker}
}

func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login verifies the credentials and mints a token. A missing user and a
// wrong password produce the identical error so callers cannot probe which
// usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	tkn, err := s.codec.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	return tkn, user, nil
}

// Me re-reads the user behind an already-verified token so server-side
// edits (a role change, most notably) show up even while the embedded
// claims are stale. A token for a deleted user yields ErrUserNotFound
// rather than a ghost identity.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.repo.FindByID(ctx, userID)
}

// Logout denylists the token id when a revoker is configured. Without one,
// logout is advisory: the client deletes its cookie but the token string
// stays valid until expiry. Invalid or absent tokens are ignored; there is
// nothing to revoke and the client still ends up logged out.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	if s.revoker == nil || rawToken == "" {
		return nil
	}
	claims, err := s.codec.Verify(rawToken)
	if err != nil {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}
