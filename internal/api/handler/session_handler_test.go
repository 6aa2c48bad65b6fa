package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/service"
)

type memorySessionRepo struct {
	stored *domain.PersistedSession
}

func (r *memorySessionRepo) Save(_ context.Context, s *domain.PersistedSession) error {
	clone := *s
	r.stored = &clone
	return nil
}

func (r *memorySessionRepo) Load(_ context.Context) (*domain.PersistedSession, error) {
	if r.stored == nil {
		return nil, errors.New("no session")
	}
	clone := *r.stored
	return &clone, nil
}

func (r *memorySessionRepo) Clear(_ context.Context) error {
	r.stored = nil
	return nil
}

func newDemoSessionHandler() *SessionHandler {
	store := service.NewSessionStore(
		service.NewMockVerifier(),
		&memorySessionRepo{},
		&stubSubscriptionProvider{err: domain.ErrSubscriptionNotFound},
		zerolog.Nop(),
	)
	store.Initialize(context.Background())
	return NewSessionHandler(store)
}

func TestSessionHandler_LoginAndShow(t *testing.T) {
	h := newDemoSessionHandler()

	c, rec := newTestContext(t, http.MethodPost, "/v1/session/login",
		`{"email":"admin@meditrack.com","password":"password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["authenticated"] != true {
		t.Errorf("expected authenticated snapshot, got %+v", resp)
	}
	user, _ := resp["user"].(map[string]any)
	if user["role"] != "admin" {
		t.Errorf("expected admin identity, got %+v", user)
	}
}

func TestSessionHandler_Login_BadCredentialsPropagate(t *testing.T) {
	h := newDemoSessionHandler()

	c, _ := newTestContext(t, http.MethodPost, "/v1/session/login",
		`{"email":"admin@meditrack.com","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	h := newDemoSessionHandler()

	c, _ := newTestContext(t, http.MethodPost, "/v1/session/login",
		`{"email":"doctor@meditrack.com","password":"password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	c, rec := newTestContext(t, http.MethodPost, "/v1/session/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["authenticated"] != false {
		t.Errorf("expected cleared session, got %+v", resp)
	}
}

func TestSessionHandler_CheckPath(t *testing.T) {
	h := newDemoSessionHandler()

	// Unauthenticated: denied with a login redirect remembering the path.
	c, rec := newTestContext(t, http.MethodGet, "/v1/session/guard?path=/admin/users", "")
	if err := h.CheckPath(c); err != nil {
		t.Fatalf("guard check failed: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["decision"] != "denied" || resp["redirect_to"] != "/login" || resp["return_to"] != "/admin/users" {
		t.Errorf("unexpected guard response: %+v", resp)
	}

	// Authenticated doctor: /admin is denied toward the landing path.
	c, _ = newTestContext(t, http.MethodPost, "/v1/session/login",
		`{"email":"doctor@meditrack.com","password":"password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	c, rec = newTestContext(t, http.MethodGet, "/v1/session/guard?path=/admin", "")
	if err := h.CheckPath(c); err != nil {
		t.Fatalf("guard check failed: %v", err)
	}
	resp = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["decision"] != "denied" || resp["redirect_to"] != "/" {
		t.Errorf("unexpected guard response for doctor on /admin: %+v", resp)
	}

	// The doctor's own screens are allowed.
	c, rec = newTestContext(t, http.MethodGet, "/v1/session/guard?path=/patients", "")
	if err := h.CheckPath(c); err != nil {
		t.Fatalf("guard check failed: %v", err)
	}
	resp = nil
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["decision"] != "allowed" {
		t.Errorf("expected allowed, got %+v", resp)
	}
}
