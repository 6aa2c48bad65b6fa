package ports

import (
	"context"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// CredentialVerifier maps a submitted email/password pair to an identity.
//
// Implementations must return domain.ErrInvalidCredentials when the pair does
// not match a known identity, and must have no side effects; persisting a
// verified identity is the caller's responsibility.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.User, error)
}
