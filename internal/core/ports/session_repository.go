package ports

import (
	"context"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// SessionRepository is the durable store for the persisted session record
// (bearer token + serialized identity, kept as a single unit).
type SessionRepository interface {
	// Save writes the token and identity entries together.
	Save(ctx context.Context, s *domain.PersistedSession) error
	// Load returns the persisted session, or an error when none exists or the
	// record cannot be read. Callers treat any failure as "no session".
	Load(ctx context.Context) (*domain.PersistedSession, error)
	// Clear removes both entries together. Clearing an absent session is a no-op.
	Clear(ctx context.Context) error
}
