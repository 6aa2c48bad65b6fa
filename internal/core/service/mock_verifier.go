package service

import (
	"context"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// mockCredential is one row of the fixed demo credential table.
type mockCredential struct {
	password string
	user     domain.User
}

// MockVerifier resolves credentials against a fixed closed table, one entry
// per role. It stands in for a real identity provider in demo deployments.
type MockVerifier struct {
	table map[string]mockCredential
}

// NewMockVerifier builds the verifier with the five demo accounts. All demo
// accounts share one password.
func NewMockVerifier() *MockVerifier {
	const demoPassword = "password123"

	users := []domain.User{
		{ID: "1", Name: "Admin User", Email: "admin@meditrack.com", Role: domain.RoleAdmin},
		{ID: "2", Name: "Doctor Smith", Email: "doctor@meditrack.com", Role: domain.RoleDoctor},
		{ID: "3", Name: "Nurse Johnson", Email: "nurse@meditrack.com", Role: domain.RoleNurse},
		{ID: "4", Name: "Receptionist Brown", Email: "receptionist@meditrack.com", Role: domain.RoleReceptionist},
		{ID: "5", Name: "John Patient", Email: "patient@meditrack.com", Role: domain.RolePatient},
	}

	table := make(map[string]mockCredential, len(users))
	for _, u := range users {
		table[u.Email] = mockCredential{password: demoPassword, user: u}
	}
	return &MockVerifier{table: table}
}

// Verify resolves the email/password pair to its identity, or fails with
// domain.ErrInvalidCredentials. It has no side effects.
func (v *MockVerifier) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	cred, ok := v.table[email]
	if !ok || cred.password != password {
		return nil, domain.ErrInvalidCredentials
	}

	user := cred.user
	return &user, nil
}
