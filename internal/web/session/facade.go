// Package session resolves the current identity for the presentation tier.
// The web server never holds the signing secret: it forwards the session
// cookie to the backend's me endpoint and trusts that single verification
// authority. Every failure — absent cookie, 401, network error, garbage
// body — collapses to "not authenticated"; the caller only ever sees a
// redirect to the login page, never an error.
package session

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	apisession "github.com/learnly/course-platform/internal/api/session"
)

const requestTimeout = 5 * time.Second

// Identity is the authenticated user as reported by the backend.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Facade answers "who is this request" by delegating to the backend.
type Facade struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewFacade(apiBaseURL string, log zerolog.Logger) *Facade {
	return &Facade{
		baseURL: apiBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// CurrentUser resolves the identity behind r's session cookie. The second
// return value is false for anonymous requests; the Identity is then nil.
func (f *Facade) CurrentUser(ctx context.Context, r *http.Request) (*Identity, bool) {
	cookie, err := r.Cookie(apisession.CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, false
	}
	req.AddCookie(cookie)

	resp, err := f.client.Do(req)
	if err != nil {
		// Backend unreachable: fail closed, the user can retry via login.
		f.log.Warn().Err(err).Msg("identity lookup failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var body struct {
		User *Identity `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.User == nil {
		f.log.Warn().Err(err).Msg("identity response malformed")
		return nil, false
	}
	return body.User, true
}
