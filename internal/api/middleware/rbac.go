package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learnly/course-platform/internal/api/metrics"
)

// RBAC is the second gate stage: it compares the role injected by Auth
// against the allowed set. An authenticated caller with the wrong role gets
// 403, never 401 — identity was established, permission was not. The role
// checked here is the one embedded at token issuance; a later role change
// only takes effect once the token is reissued.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[role]; !ok {
				metrics.GateRejectionsTotal.WithLabelValues("authorization").Inc()
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
