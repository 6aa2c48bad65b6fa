package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/clinic-system/internal/api/metrics"
	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

// SubscriptionHandler handles patient-facing subscription operations.
type SubscriptionHandler struct {
	subscriptions ports.SubscriptionProvider
	checkout      ports.CheckoutProvider
}

func NewSubscriptionHandler(subscriptions ports.SubscriptionProvider, checkout ports.CheckoutProvider) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, checkout: checkout}
}

type subscriptionResponse struct {
	Subscription *domain.Subscription `json:"subscription"`
	Active       bool                 `json:"active"`
}

type checkoutRequest struct {
	PriceID string `json:"price_id" validate:"required"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// Me handles GET /v1/subscriptions/me — the current patient's subscription
// snapshot. An absent subscription is not an error; the response simply
// carries no subscription data.
//
// @Summary      Current subscription
// @Tags         subscriptions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  subscriptionResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/subscriptions/me [get]
func (h *SubscriptionHandler) Me(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if role != domain.RolePatient {
		return domain.ErrForbidden
	}

	sub, err := h.subscriptions.FetchByUserID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			metrics.SubscriptionFetchesTotal.WithLabelValues("miss").Inc()
			return c.JSON(http.StatusOK, subscriptionResponse{})
		}
		metrics.SubscriptionFetchesTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SubscriptionFetchesTotal.WithLabelValues("hit").Inc()
	return c.JSON(http.StatusOK, subscriptionResponse{
		Subscription: sub,
		Active:       sub.IsActive(),
	})
}

// Checkout handles POST /v1/subscriptions/checkout — creates a hosted
// checkout session for the requested plan and returns its redirect URL.
//
// @Summary      Start a subscription checkout
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkoutRequest  true  "Plan price id"
// @Success      200   {object}  checkoutResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/subscriptions/checkout [post]
func (h *SubscriptionHandler) Checkout(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if role != domain.RolePatient {
		return domain.ErrForbidden
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	url, err := h.checkout.CreateCheckoutSession(c.Request().Context(), userID, req.PriceID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkoutResponse{URL: url})
}
