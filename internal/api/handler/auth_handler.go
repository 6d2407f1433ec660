package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-platform/internal/api/metrics"
	"github.com/learnly/course-platform/internal/api/session"
	"github.com/learnly/course-platform/internal/core/domain"
	"github.com/learnly/course-platform/internal/core/ports"
)

type AuthHandler struct {
	authService   ports.AuthService
	tokenTTL      time.Duration
	secureCookies bool
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
	}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "user already exists"})
		case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrInvalidCredentials):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, userResponse{User: user.Public()})
}

// Login authenticates a user and sets the session cookie. Unknown usernames
// and wrong passwords are indistinguishable in both status and body.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	tkn, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	session.Set(c, tkn, h.tokenTTL, h.secureCookies)
	return c.JSON(http.StatusOK, userResponse{User: user.Public()})
}

// Me returns the current identity. The gate already verified the token;
// the user is re-read from the store so server-side edits are visible and a
// deleted account cannot keep acting through an outstanding token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthenticated) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
		}
		return err
	}

	return c.JSON(http.StatusOK, userResponse{User: user.Public()})
}

// Logout clears the session cookie and, when revocation is configured,
// denylists the token until its natural expiry. Without revocation the
// operation is advisory: a copied token string stays valid until it
// expires. A failed denylist write is reported as an error so the client
// never believes a still-live token was revoked.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var revokeErr error
	if raw, ok := session.Token(c.Request()); ok {
		revokeErr = h.authService.Logout(c.Request().Context(), raw)
	}

	session.Clear(c, h.secureCookies)
	if revokeErr != nil {
		return revokeErr
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "logged out"})
}
