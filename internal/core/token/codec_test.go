package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	raw, err := codec.Issue("u1", "alice", "student")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if raw == "" {
		t.Fatalf("expected token, got empty string")
	}

	claims, err := codec.Verify(raw)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "alice" || claims.Role != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected token id to be set")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatalf("expected future expiry, got %v", claims.ExpiresAt)
	}
}

func TestCodec_DefaultTTL(t *testing.T) {
	codec := NewCodec("secret", 0)
	if codec.TTL() != DefaultTTL {
		t.Fatalf("expected default TTL %v, got %v", DefaultTTL, codec.TTL())
	}
}

func TestCodec_TamperedToken(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	raw, err := codec.Issue("u1", "alice", "student")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Flip one character in each of the three segments.
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}
	for i := range parts {
		mutated := make([]string, 3)
		copy(mutated, parts)
		seg := []byte(mutated[i])
		if seg[0] == 'A' {
			seg[0] = 'B'
		} else {
			seg[0] = 'A'
		}
		mutated[i] = string(seg)

		if _, err := codec.Verify(strings.Join(mutated, ".")); err == nil {
			t.Fatalf("expected rejection after mutating segment %d", i)
		}
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	raw, err := NewCodec("secret-a", time.Hour).Issue("u1", "alice", "admin")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = NewCodec("secret-b", time.Hour).Verify(raw)
	kind, ok := RejectionOf(err)
	if !ok || kind != KindBadSignature {
		t.Fatalf("expected bad_signature rejection, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	// Hand-build a token with the same secret but an expiry in the past so
	// the signature is valid and only the expiry check can reject it.
	claims := &Claims{
		UserID:   "u1",
		Username: "alice",
		Role:     "student",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	_, err = NewCodec("secret", time.Hour).Verify(raw)
	kind, ok := RejectionOf(err)
	if !ok || kind != KindExpired {
		t.Fatalf("expected expired rejection, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d", "!!.!!.!!"} {
		_, err := codec.Verify(raw)
		kind, ok := RejectionOf(err)
		if !ok || kind != KindMalformed {
			t.Fatalf("input %q: expected malformed rejection, got %v", raw, err)
		}
	}
}

func TestCodec_UnexpectedAlgorithm(t *testing.T) {
	// An unsigned token must be refused even though its payload decodes.
	claims := jwt.MapClaims{"user_id": "u1", "role": "admin"}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	if _, err := NewCodec("secret", time.Hour).Verify(raw); err == nil {
		t.Fatalf("expected rejection for alg=none token")
	}
}
