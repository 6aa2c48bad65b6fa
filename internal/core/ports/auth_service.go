package ports

import (
	"context"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// RegisterUserInput carries the fields of the admin registration form.
type RegisterUserInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	Department string
}

// AuthService defines login and admin-side account management.
type AuthService interface {
	// Login verifies credentials and returns a signed bearer token plus the
	// authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Register creates a new user account. Admin-only at the API surface.
	Register(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
