// Package session defines how the identity token travels between browser
// and servers: an HTTP-only cookie for browsers, a forwarded bearer header
// for service-to-service calls from the presentation tier.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the cookie carrying the signed token.
const CookieName = "token"

// Token extracts the raw token from a request: the session cookie first,
// then an Authorization bearer header for forwarded requests.
func Token(r *http.Request) (string, bool) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, true
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// Set writes the session cookie. Lifetime matches the token TTL so cookie
// and token expire together. Secure is dropped only for non-TLS local
// development.
func Set(c echo.Context, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the session cookie immediately. It must mirror the
// attributes used by Set or browsers treat it as a different cookie.
func Clear(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
