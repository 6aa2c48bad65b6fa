package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// ctxIdentity extracts the identity claims injected by the Auth middleware
// and performs a fast-fail check before any service call: a non-empty, valid
// role proves the middleware ran and the token carried a usable identity.
func ctxIdentity(c echo.Context) (userID string, role domain.Role, err error) {
	rawRole, _ := c.Get("role").(string)
	role = domain.Role(rawRole)
	if !role.Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing subject")
	}

	return userID, role, nil
}
