package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/clinic-system/internal/api/metrics"
	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/guard"
)

// RBAC enforces role-based access control on a route group.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.Role(role)]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// Guard evaluates the navigation route guard against the request path,
// using the identity claims injected by Auth as the session snapshot. The
// server never sees a loading session, so Unresolved cannot occur here;
// redirect-to-login denials map to 401 and default-path denials to 403.
func Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := sessionFromClaims(c)
			decision := guard.Evaluate(session, guardPath(c))
			metrics.GuardDecisionsTotal.WithLabelValues(decision.Kind.String()).Inc()

			switch decision.Kind {
			case guard.Allowed:
				return next(c)
			case guard.Denied:
				if decision.RedirectTo == guard.LoginPath {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			default:
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session unresolved")
			}
		}
	}
}

// sessionFromClaims reconstructs a session snapshot from the JWT claims.
func sessionFromClaims(c echo.Context) domain.Session {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.Session{}
	}

	id, _ := c.Get("user_id").(string)
	name, _ := c.Get("name").(string)
	email, _ := c.Get("email").(string)
	return domain.Session{User: &domain.User{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  domain.Role(role),
	}}
}

// guardPath maps the API route to the navigation path the guard rules are
// written against: /v1/admin/... falls under the /admin prefix.
func guardPath(c echo.Context) string {
	path := c.Request().URL.Path
	const apiPrefix = "/v1"
	if len(path) >= len(apiPrefix) && path[:len(apiPrefix)] == apiPrefix {
		return path[len(apiPrefix):]
	}
	return path
}
