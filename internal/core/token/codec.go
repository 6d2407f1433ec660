// Package token implements the signed-token codec shared by every verifier.
// Tokens are self-contained HS256 JWTs: verification needs only the signing
// secret, never a database lookup. The flip side is that a token cannot be
// invalidated before its natural expiry unless a revocation denylist is
// consulted separately.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTTL = 7 * 24 * time.Hour

// Claims is the identity payload embedded in a token. The role is captured
// at issuance and stays fixed for the token's lifetime; a server-side role
// change only takes effect on reissue.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// RejectionKind classifies why a token was refused.
type RejectionKind string

const (
	KindMalformed    RejectionKind = "malformed"
	KindBadSignature RejectionKind = "bad_signature"
	KindExpired      RejectionKind = "expired"
)

// Rejection is the typed error returned by Verify. Attacker-controlled
// input never produces anything other than a Rejection.
type Rejection struct {
	Kind RejectionKind
	err  error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("token rejected (%s)", r.Kind)
}

func (r *Rejection) Unwrap() error { return r.err }

// RejectionOf extracts the rejection kind from an error returned by Verify.
func RejectionOf(err error) (RejectionKind, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Kind, true
	}
	return "", false
}

// Codec signs and verifies tokens with a symmetric secret. It is stateless
// and safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the lifetime applied to issued tokens.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue mints a signed token for the given identity, expiring TTL from now.
// Each token carries a unique id (jti) so it can be denylisted on demand.
func (c *Codec) Issue(userID, username, role string) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks the signature and expiry of raw and returns the embedded
// Claims. On failure it returns a *Rejection; it never panics on malformed
// input. Signature comparison inside the JWT library is constant time.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, &Rejection{Kind: classify(err), err: err}
	}
	if !tkn.Valid {
		return nil, &Rejection{Kind: KindMalformed, err: errors.New("token not valid")}
	}
	return claims, nil
}

func classify(err error) RejectionKind {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return KindExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return KindBadSignature
	default:
		return KindMalformed
	}
}
