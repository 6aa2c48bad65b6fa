// Package billing integrates with the hosted payment processor: creating
// checkout sessions and verifying webhook signatures.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to the payment processor's HTTP API.
type Client struct {
	httpClient  *http.Client
	apiURL      string
	apiKey      string
	checkoutURL string
}

// NewClient builds a Client. checkoutURL is the hosted checkout base the
// session id is appended to when building the redirect target.
func NewClient(apiURL, apiKey, checkoutURL string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: defaultRequestTimeout},
		apiURL:      apiURL,
		apiKey:      apiKey,
		checkoutURL: checkoutURL,
	}
}

type checkoutSessionRequest struct {
	PriceID string `json:"price_id"`
	UserID  string `json:"user_id"`
}

type checkoutSessionResponse struct {
	SessionID string `json:"session_id"`
}

// CreateCheckoutSession asks the processor for a hosted checkout session for
// the given plan and returns the URL the client should be redirected to.
func (c *Client) CreateCheckoutSession(ctx context.Context, userID, priceID string) (string, error) {
	payload, err := json.Marshal(checkoutSessionRequest{PriceID: priceID, UserID: userID})
	if err != nil {
		return "", fmt.Errorf("encode checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/v1/checkout/sessions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("create checkout session: unexpected status %d", resp.StatusCode)
	}

	var out checkoutSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode checkout response: %w", err)
	}
	if out.SessionID == "" {
		return "", fmt.Errorf("create checkout session: empty session id")
	}

	return c.checkoutURL + "/" + out.SessionID, nil
}
