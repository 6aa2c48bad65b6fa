package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ---------------------------------------------------------------------------
// Signature verification
// ---------------------------------------------------------------------------

func hexHMAC(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)
	if err := VerifySignature(body, hexHMAC("secret", body), "secret"); err != nil {
		t.Fatalf("valid signature rejected: %v", err)
	}
}

func TestVerifySignature_Invalid(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)
	cases := []struct {
		name      string
		signature string
		secret    string
	}{
		{"wrong signature", "deadbeef", "secret"},
		{"wrong secret", hexHMAC("other", body), "secret"},
		{"empty signature", "", "secret"},
		{"empty secret", hexHMAC("secret", body), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := VerifySignature(body, tc.signature, tc.secret); !errors.Is(err, ErrInvalidSignature) {
				t.Fatalf("expected ErrInvalidSignature, got %v", err)
			}
		})
	}
}

func TestVerifySignature_TamperedBody(t *testing.T) {
	body := []byte(`{"id":"evt_1"}`)
	sig := hexHMAC("secret", body)

	tampered := []byte(`{"id":"evt_2"}`)
	if err := VerifySignature(tampered, sig, "secret"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for tampered body, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Checkout client
// ---------------------------------------------------------------------------

func TestClient_CreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["price_id"] != "price_basic" || req["user_id"] != "5" {
			t.Errorf("unexpected request payload: %+v", req)
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"session_id": "cs_123"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test", "https://checkout.example/c/pay")

	url, err := client.CreateCheckoutSession(context.Background(), "5", "price_basic")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if want := "https://checkout.example/c/pay/cs_123"; url != want {
		t.Errorf("expected %q, got %q", want, url)
	}
}

func TestClient_CreateCheckoutSession_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test", "https://checkout.example/c/pay")

	if _, err := client.CreateCheckoutSession(context.Background(), "5", "price_basic"); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestClient_CreateCheckoutSession_EmptySessionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test", "https://checkout.example/c/pay")

	if _, err := client.CreateCheckoutSession(context.Background(), "5", "price_basic"); err == nil {
		t.Fatal("expected error on empty session id")
	}
}
