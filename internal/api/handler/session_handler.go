package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/guard"
	"github.com/meditrack/clinic-system/internal/core/service"
)

// SessionHandler exposes the shared demo session over HTTP. Demo deployments
// run a single front-desk session, so the store holds exactly one identity;
// the endpoints mirror the dashboard's login, logout, and snapshot flows.
type SessionHandler struct {
	store *service.SessionStore
}

func NewSessionHandler(store *service.SessionStore) *SessionHandler {
	return &SessionHandler{store: store}
}

type sessionLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Authenticated bool                 `json:"authenticated"`
	Loading       bool                 `json:"loading"`
	User          *domain.User         `json:"user,omitempty"`
	Subscription  *domain.Subscription `json:"subscription,omitempty"`
	Error         string               `json:"error,omitempty"`
}

type guardCheckResponse struct {
	Decision   string `json:"decision"`
	RedirectTo string `json:"redirect_to,omitempty"`
	ReturnTo   string `json:"return_to,omitempty"`
}

func snapshotResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		Authenticated: s.Authenticated(),
		Loading:       s.Loading,
		User:          s.User,
		Subscription:  s.Subscription,
		Error:         s.Err,
	}
}

// Login handles POST /v1/session/login.
//
// @Summary      Establish the demo session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      sessionLoginRequest  true  "Demo credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req sessionLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.store.Login(c.Request().Context(), req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snapshotResponse(h.store.Snapshot()))
}

// Logout handles POST /v1/session/logout.
//
// @Summary      Clear the demo session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.store.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, snapshotResponse(h.store.Snapshot()))
}

// Show handles GET /v1/session.
//
// @Summary      Current demo session snapshot
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Show(c echo.Context) error {
	return c.JSON(http.StatusOK, snapshotResponse(h.store.Snapshot()))
}

// CheckPath handles GET /v1/session/guard — evaluates the route guard for the
// given path against the current session, answering the question "may this
// screen render" without performing the navigation.
//
// @Summary      Evaluate the route guard for a path
// @Tags         session
// @Produce      json
// @Param        path  query     string  true  "Navigation path to evaluate"
// @Success      200   {object}  guardCheckResponse
// @Router       /v1/session/guard [get]
func (h *SessionHandler) CheckPath(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		path = guard.DefaultPath
	}

	d := guard.Evaluate(h.store.Snapshot(), path)
	return c.JSON(http.StatusOK, guardCheckResponse{
		Decision:   d.Kind.String(),
		RedirectTo: d.RedirectTo,
		ReturnTo:   d.ReturnTo,
	})
}
