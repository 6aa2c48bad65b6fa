package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

// SessionStore is the single authority for "who is logged in" and the derived
// subscription state. It is an explicitly constructed instance so tests can
// build isolated stores; only its own methods mutate the session, everything
// else reads snapshots.
type SessionStore struct {
	verifier      ports.CredentialVerifier
	sessions      ports.SessionRepository
	subscriptions ports.SubscriptionProvider
	log           zerolog.Logger

	mu      sync.Mutex
	session domain.Session

	// wg tracks in-flight subscription fetches so tests can wait for them.
	wg sync.WaitGroup
}

// NewSessionStore builds a SessionStore. The session starts in the loading
// state until Initialize has run.
func NewSessionStore(
	verifier ports.CredentialVerifier,
	sessions ports.SessionRepository,
	subscriptions ports.SubscriptionProvider,
	log zerolog.Logger,
) *SessionStore {
	return &SessionStore{
		verifier:      verifier,
		sessions:      sessions,
		subscriptions: subscriptions,
		log:           log,
		session:       domain.Session{Loading: true},
	}
}

// Snapshot returns a copy of the current session for readers.
func (s *SessionStore) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Initialize restores a previously persisted identity, if any. It runs once
// at startup, never fails, and leaves loading=false regardless of outcome: a
// read failure simply yields an unauthenticated session. The restored record
// is trusted without re-verifying credentials.
func (s *SessionStore) Initialize(ctx context.Context) {
	persisted, err := s.sessions.Load(ctx)

	s.mu.Lock()
	s.session.Loading = false
	if err == nil && persisted != nil && persisted.User.Role.Valid() {
		user := persisted.User
		s.session.User = &user
	}
	restored := s.session.User
	s.mu.Unlock()

	if err != nil {
		s.log.Debug().Err(err).Msg("no persisted session restored")
		return
	}
	if restored != nil {
		s.log.Info().Str("user_id", restored.ID).Str("role", string(restored.Role)).Msg("session restored")
		if restored.Role == domain.RolePatient {
			s.spawnSubscriptionFetch(restored.ID)
		}
	}
}

// Login verifies the submitted credentials and establishes the identity.
//
// Error state is cleared before verification; on failure the verifier's
// message is stored and the identity is left absent. A patient identity
// triggers an asynchronous subscription fetch that does not gate login's own
// completion. The loading flag is cleared on every exit path. A second call
// while an attempt is in flight is rejected with domain.ErrLoginInFlight.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	if s.session.Loading {
		s.mu.Unlock()
		return domain.ErrLoginInFlight
	}
	s.session.Loading = true
	s.session.Err = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.session.Loading = false
		s.mu.Unlock()
	}()

	user, err := s.verifier.Verify(ctx, email, password)
	if err != nil {
		s.mu.Lock()
		s.session.Err = err.Error()
		s.mu.Unlock()
		s.log.Warn().Str("email", email).Msg("login failed")
		return err
	}

	if err := s.sessions.Save(ctx, &domain.PersistedSession{Token: bearerToken(user), User: *user}); err != nil {
		// Persistence failure does not invalidate the verified identity; the
		// session simply won't survive a restart.
		s.log.Warn().Err(err).Msg("failed to persist session")
	}

	s.mu.Lock()
	s.session.User = user
	s.mu.Unlock()

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")

	if user.Role == domain.RolePatient {
		s.spawnSubscriptionFetch(user.ID)
	}
	return nil
}

// Logout clears the identity, subscription, and persisted record. It has no
// failure path and is idempotent.
func (s *SessionStore) Logout(ctx context.Context) {
	if err := s.sessions.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear persisted session")
	}

	s.mu.Lock()
	s.session.User = nil
	s.session.Subscription = nil
	s.session.Err = ""
	s.mu.Unlock()
}

// Wait blocks until any in-flight subscription fetch has completed. Intended
// for tests and orderly shutdown.
func (s *SessionStore) Wait() {
	s.wg.Wait()
}

// spawnSubscriptionFetch starts the fire-and-forget subscription read for the
// given identity. The fetch result is applied only if the identity still
// matches when it arrives; a logout or relogin in between makes it stale.
func (s *SessionStore) spawnSubscriptionFetch(userID string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		sub, err := s.subscriptions.FetchByUserID(context.Background(), userID)
		if err != nil {
			// Non-fatal: the dashboard shows no subscription data.
			s.log.Warn().Err(err).Str("user_id", userID).Msg("subscription fetch failed")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.session.User == nil || s.session.User.ID != userID || s.session.User.Role != domain.RolePatient {
			s.log.Debug().Str("user_id", userID).Msg("discarding stale subscription result")
			return
		}
		s.session.Subscription = sub
	}()
}

// bearerToken derives the persisted bearer token for a verified identity.
// The mock flow uses a fixed opaque token, mirroring the demo backend.
func bearerToken(_ *domain.User) string {
	return "mock-jwt-token"
}
