package ports

import (
	"context"
	"time"

	"github.com/learnly/course-platform/internal/core/token"
)

// TokenCodec signs and verifies self-contained identity tokens.
type TokenCodec interface {
	Issue(userID, username, role string) (string, error)
	Verify(raw string) (*token.Claims, error)
	TTL() time.Duration
}

// TokenRevoker records explicitly revoked token ids until their natural
// expiry. The common verification path never touches it; it is consulted
// only after a token already passed signature and expiry checks.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
