package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-platform/internal/api/session"
	"github.com/learnly/course-platform/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
	meFn       func(ctx context.Context, userID string) (*domain.User, error)
	logoutFn   func(ctx context.Context, rawToken string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	return s.registerFn(ctx, username, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.meFn(ctx, userID)
}

func (s *stubAuthService) Logout(ctx context.Context, rawToken string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, rawToken)
	}
	return nil
}

func newTestContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password, role string) (*domain.User, error) {
			if username != "alice" || email != "a@x.com" || role != "student" {
				t.Fatalf("unexpected args: %s %s %s", username, email, role)
			}
			return &domain.User{ID: "u1", Username: username, Email: email, Role: role, PasswordHash: "bcrypt-hash"}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"a@x.com","password":"p1p1p1p1","role":"student"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "student" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "bcrypt-hash") {
		t.Fatalf("response leaked the password hash: %s", rec.Body.String())
	}
}

// Register has exactly two outcomes on the wire: 201 or 400. A duplicate
// username answers 400 like any other invalid registration.
func TestAuthHandler_Register_Conflict(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"b@x.com","password":"p1p1p1p1","role":"teacher"}`)

	_ = h.Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "user already exists" {
		t.Fatalf("unexpected error body: %+v", resp)
	}
}

func TestAuthHandler_Register_BadRole(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password, role string) (*domain.User, error) {
			t.Fatalf("validator should have rejected the payload")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"b@x.com","password":"p1p1p1p1","role":"superuser"}`)

	_ = h.Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "alice" || password != "secret99" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "signed-token", &domain.User{ID: "u1", Username: "alice", Role: "student"}, nil
		},
	}
	h := NewAuthHandler(stub, 7*24*time.Hour, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"secret99"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName || cookies[0].Value != "signed-token" {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes wrong: %+v", cookies[0])
	}

	if strings.Contains(rec.Body.String(), "signed-token") {
		t.Fatalf("token must travel in the cookie, not the body: %s", rec.Body.String())
	}
}

// Unknown usernames and wrong passwords must be indistinguishable: same
// status, same body.
func TestAuthHandler_Login_UniformRejection(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c1, rec1 := newTestContext(e, http.MethodPost, "/api/auth/login", `{"username":"ghost-user","password":"anything"}`)
	_ = h.Login(c1)

	c2, rec2 := newTestContext(e, http.MethodPost, "/api/auth/login", `{"username":"realuser","password":"wrongpassword"}`)
	_ = h.Login(c2)

	if rec1.Code != http.StatusUnauthorized || rec2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", rec1.Code, rec2.Code)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("rejection bodies differ: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}
}

func TestAuthHandler_Me_DeletedUser(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	c, rec := newTestContext(e, http.MethodGet, "/api/auth/me", "")
	c.Set("user_id", "deleted-user")

	_ = h.Me(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := echo.New()
	revokedWith := ""
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, rawToken string) error {
			revokedWith = rawToken
			return nil
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "old-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revokedWith != "old-token" {
		t.Fatalf("expected logout to pass the raw token, got %q", revokedWith)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cleared cookie, got %+v", cookies)
	}
}

// A failed denylist write must not be swallowed: the handler still clears
// the cookie but reports the error instead of claiming the token was
// revoked.
func TestAuthHandler_Logout_RevocationFailure(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, rawToken string) error {
			return errors.New("redis down")
		},
	}
	h := NewAuthHandler(stub, time.Hour, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "live-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Logout(c)
	if err == nil {
		t.Fatalf("expected revocation failure to propagate")
	}
	if rec.Code == http.StatusOK && rec.Body.Len() > 0 {
		t.Fatalf("expected no success response, got %d %s", rec.Code, rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cleared cookie even on failure, got %+v", cookies)
	}
}
