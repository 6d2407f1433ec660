package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-platform/internal/core/domain"
	"github.com/learnly/course-platform/internal/web/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// PageHandler renders the server-side pages. Every protected page performs
// a render-time identity check through the session façade and redirects
// anonymous visitors to the login page before any content is produced.
type PageHandler struct {
	sessions *session.Facade
}

func NewPageHandler(sessions *session.Facade) *PageHandler {
	return &PageHandler{sessions: sessions}
}

type loginPageData struct {
	Title string
}

type dashboardData struct {
	Title     string
	User      *session.Identity
	IsAdmin   bool
	IsTeacher bool
}

// Login renders the sign-in page. A visitor who already has a valid
// session is sent straight to the dashboard.
func (h *PageHandler) Login(c echo.Context) error {
	if _, ok := h.sessions.CurrentUser(c.Request().Context(), c.Request()); ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	return pages.ExecuteTemplate(c.Response(), "login.html", loginPageData{Title: "Sign in"})
}

// Dashboard renders the landing page. Navigation is gated by the fresh
// role reported by the backend, not by anything embedded in the cookie.
func (h *PageHandler) Dashboard(c echo.Context) error {
	identity, ok := h.sessions.CurrentUser(c.Request().Context(), c.Request())
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	return pages.ExecuteTemplate(c.Response(), "dashboard.html", dashboardData{
		Title:     "Dashboard",
		User:      identity,
		IsAdmin:   identity.Role == domain.RoleAdmin,
		IsTeacher: identity.Role == domain.RoleAdmin || identity.Role == domain.RoleTeacher,
	})
}
