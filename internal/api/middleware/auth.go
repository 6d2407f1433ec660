package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/learnly/course-platform/internal/api/metrics"
	"github.com/learnly/course-platform/internal/api/session"
	"github.com/learnly/course-platform/internal/core/ports"
	"github.com/learnly/course-platform/internal/core/token"
)

// Auth is the first gate stage: it extracts the token from the transport,
// verifies it, and injects the claims into the request context. Every
// failure path rejects with 401 — the gate never fails open, and the
// response does not distinguish missing, malformed, expired, tampered or
// revoked tokens.
func Auth(codec ports.TokenCodec, revoker ports.TokenRevoker, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := session.Token(c.Request())
			if !ok {
				metrics.GateRejectionsTotal.WithLabelValues("authentication").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				kind, _ := token.RejectionOf(err)
				metrics.TokenVerificationsTotal.WithLabelValues(string(kind)).Inc()
				metrics.GateRejectionsTotal.WithLabelValues("authentication").Inc()
				log.Debug().
					Str("rejection", string(kind)).
					Str("token_prefix", tokenPrefix(raw)).
					Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			if revoker != nil {
				revoked, err := revoker.IsRevoked(c.Request().Context(), claims.ID)
				if err != nil {
					// Denylist unreachable: reject rather than admit a
					// possibly revoked token.
					log.Error().Err(err).Msg("revocation check failed")
					metrics.GateRejectionsTotal.WithLabelValues("authentication").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				}
				if revoked {
					metrics.TokenVerificationsTotal.WithLabelValues("revoked").Inc()
					metrics.GateRejectionsTotal.WithLabelValues("authentication").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				}
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set("user_id", claims.UserID)
			c.Set("username", claims.Username)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

// tokenPrefix truncates a token for diagnostic logs. Full tokens are
// credentials and never land in a log line.
func tokenPrefix(raw string) string {
	const n = 8
	if len(raw) <= n {
		return raw
	}
	return raw[:n] + "..."
}
