package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/clinic-system/internal/api/metrics"
	"github.com/meditrack/clinic-system/internal/core/ports"
	"github.com/meditrack/clinic-system/internal/infrastructure/billing"
)

// BillingDispatcher is the interface the handler uses to enqueue billing events.
type BillingDispatcher interface {
	Enqueue(event ports.BillingEventInput)
}

// WebhookHandler ingests billing events from the payment processor.
type WebhookHandler struct {
	dispatcher BillingDispatcher
	secret     string
}

// NewWebhookHandler creates a WebhookHandler. secret is the shared endpoint
// secret used to verify webhook signatures.
func NewWebhookHandler(dispatcher BillingDispatcher, secret string) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher, secret: secret}
}

type billingEventRequest struct {
	ID   string `json:"id" validate:"required"`
	Type string `json:"type" validate:"required"`
	Data struct {
		UserID            string `json:"user_id" validate:"required"`
		Status            string `json:"status"`
		PriceID           string `json:"price_id"`
		CurrentPeriodEnd  int64  `json:"current_period_end"`
		CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	} `json:"data"`
}

// Receive handles POST /v1/webhooks/billing — verifies the signature then
// enqueues the event, returning 202. Signature verification happens against
// the raw body before any decoding.
//
// @Summary      Ingest a billing webhook event
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        Billing-Signature  header    string               true  "HMAC-SHA256 of the raw body"
// @Param        body               body      billingEventRequest  true  "Billing event"
// @Success      202                {object}  map[string]string
// @Failure      400                {object}  map[string]string
// @Failure      401                {object}  map[string]string
// @Router       /v1/webhooks/billing [post]
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read body")
	}

	signature := c.Request().Header.Get("Billing-Signature")
	if err := billing.VerifySignature(body, signature, h.secret); err != nil {
		metrics.BillingErrorsTotal.WithLabelValues("bad_signature").Inc()
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid signature")
	}

	var req billingEventRequest
	if err := json.Unmarshal(body, &req); err != nil {
		metrics.BillingErrorsTotal.WithLabelValues("bad_payload").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.BillingErrorsTotal.WithLabelValues("bad_payload").Inc()
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(ports.BillingEventInput{
		EventID:           req.ID,
		Type:              req.Type,
		UserID:            req.Data.UserID,
		Status:            req.Data.Status,
		PriceID:           req.Data.PriceID,
		CurrentPeriodEnd:  req.Data.CurrentPeriodEnd,
		CancelAtPeriodEnd: req.Data.CancelAtPeriodEnd,
	})

	metrics.BillingEventsTotal.WithLabelValues(req.Type).Inc()
	return c.JSON(http.StatusAccepted, map[string]string{"message": "event accepted"})
}
