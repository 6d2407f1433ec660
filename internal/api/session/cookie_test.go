package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestToken_FromCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "abc"})

	tkn, ok := Token(req)
	if !ok || tkn != "abc" {
		t.Fatalf("expected token from cookie, got %q ok=%v", tkn, ok)
	}
}

func TestToken_FromBearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer xyz")

	tkn, ok := Token(req)
	if !ok || tkn != "xyz" {
		t.Fatalf("expected token from header, got %q ok=%v", tkn, ok)
	}
}

func TestToken_CookieWinsOverHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	tkn, _ := Token(req)
	if tkn != "cookie-token" {
		t.Fatalf("expected cookie to take precedence, got %q", tkn)
	}
}

func TestToken_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := Token(req); ok {
		t.Fatalf("expected no token")
	}

	req.Header.Set("Authorization", "Token abc")
	if _, ok := Token(req); ok {
		t.Fatalf("expected non-bearer scheme to be ignored")
	}
}

func TestSetAndClear_CookieAttributes(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	Set(c, "signed-token", 7*24*time.Hour, true)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != CookieName || ck.Value != "signed-token" {
		t.Fatalf("unexpected cookie: %+v", ck)
	}
	if !ck.HttpOnly || !ck.Secure || ck.Path != "/" || ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie attributes wrong: %+v", ck)
	}
	if ck.MaxAge != int((7 * 24 * time.Hour).Seconds()) {
		t.Fatalf("expected max-age to match ttl, got %d", ck.MaxAge)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	Clear(c, true)

	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 || cleared[0].Value != "" {
		t.Fatalf("expected expired empty cookie, got %+v", cleared)
	}
}
