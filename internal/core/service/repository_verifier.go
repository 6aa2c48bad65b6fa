package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

// RepositoryVerifier checks credentials against stored user accounts. It is
// the production substitute for MockVerifier behind the same capability
// interface.
type RepositoryVerifier struct {
	users ports.UserRepository
}

func NewRepositoryVerifier(users ports.UserRepository) *RepositoryVerifier {
	return &RepositoryVerifier{users: users}
}

// Verify looks up the account by email and compares the bcrypt hash. Unknown
// accounts and bad passwords both map to domain.ErrInvalidCredentials so the
// caller cannot distinguish them.
func (v *RepositoryVerifier) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}
