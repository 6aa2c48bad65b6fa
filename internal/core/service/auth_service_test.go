package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	r.byEmail[user.Email] = &clone
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.byEmail))
	for _, u := range r.byEmail {
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

const testSecret = "test-secret"

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_ReturnsSignedToken(t *testing.T) {
	svc := NewAuthService(NewMockVerifier(), newStubUserRepo(), testSecret, time.Hour)

	token, user, err := svc.Login(context.Background(), "doctor@meditrack.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != domain.RoleDoctor {
		t.Errorf("expected role doctor, got %q", user.Role)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatal("expected valid MapClaims token")
	}
	if claims["sub"] != "2" {
		t.Errorf("expected sub %q, got %v", "2", claims["sub"])
	}
	if claims["email"] != "doctor@meditrack.com" {
		t.Errorf("expected email claim, got %v", claims["email"])
	}
	if claims["role"] != "doctor" {
		t.Errorf("expected role claim %q, got %v", "doctor", claims["role"])
	}
	if claims["name"] != "Doctor Smith" {
		t.Errorf("expected name claim %q, got %v", "Doctor Smith", claims["name"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("expected exp claim")
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := NewAuthService(NewMockVerifier(), newStubUserRepo(), testSecret, time.Hour)

	cases := []struct{ email, password string }{
		{"doctor@meditrack.com", "wrong"},
		{"unknown@meditrack.com", "password123"},
		{"", "password123"},
		{"doctor@meditrack.com", ""},
	}
	for _, tc := range cases {
		_, _, err := svc.Login(context.Background(), tc.email, tc.password)
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("email=%q password=%q: expected ErrInvalidCredentials, got %v", tc.email, tc.password, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(NewMockVerifier(), repo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterUserInput{
		Name:       "New Nurse",
		Email:      "newnurse@meditrack.com",
		Password:   "s3cret-pw",
		Role:       "nurse",
		Department: "Pediatrics",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated id")
	}
	if user.Role != domain.RoleNurse {
		t.Errorf("expected role nurse, got %q", user.Role)
	}
	if user.PasswordHash == "s3cret-pw" || user.PasswordHash == "" {
		t.Error("password must be stored as a hash")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pw")) != nil {
		t.Error("stored hash does not match the submitted password")
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := NewAuthService(NewMockVerifier(), newStubUserRepo(), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), ports.RegisterUserInput{
		Name: "X", Email: "x@meditrack.com", Password: "pw123456", Role: "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(NewMockVerifier(), repo, testSecret, time.Hour)

	in := ports.RegisterUserInput{Name: "A", Email: "dup@meditrack.com", Password: "pw123456", Role: "doctor"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// RepositoryVerifier
// ---------------------------------------------------------------------------

func TestRepositoryVerifier_Verify(t *testing.T) {
	repo := newStubUserRepo()
	hash, _ := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.MinCost)
	repo.byEmail["stored@meditrack.com"] = &domain.User{
		ID: "u1", Email: "stored@meditrack.com", Role: domain.RoleDoctor, PasswordHash: string(hash),
	}
	v := NewRepositoryVerifier(repo)

	user, err := v.Verify(context.Background(), "stored@meditrack.com", "pw123456")
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("expected user u1, got %q", user.ID)
	}

	if _, err := v.Verify(context.Background(), "stored@meditrack.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("bad password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "missing@meditrack.com", "pw123456"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown account: expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// MockVerifier
// ---------------------------------------------------------------------------

func TestMockVerifier_AllAccounts(t *testing.T) {
	v := NewMockVerifier()

	cases := []struct {
		email string
		id    string
		role  domain.Role
	}{
		{"admin@meditrack.com", "1", domain.RoleAdmin},
		{"doctor@meditrack.com", "2", domain.RoleDoctor},
		{"nurse@meditrack.com", "3", domain.RoleNurse},
		{"receptionist@meditrack.com", "4", domain.RoleReceptionist},
		{"patient@meditrack.com", "5", domain.RolePatient},
	}
	for _, tc := range cases {
		user, err := v.Verify(context.Background(), tc.email, "password123")
		if err != nil {
			t.Fatalf("%s: verify failed: %v", tc.email, err)
		}
		if user.ID != tc.id || user.Role != tc.role {
			t.Errorf("%s: got id=%q role=%q, want id=%q role=%q", tc.email, user.ID, user.Role, tc.id, tc.role)
		}
	}
}

func TestMockVerifier_CaseSensitiveEmail(t *testing.T) {
	v := NewMockVerifier()

	_, err := v.Verify(context.Background(), "Admin@MediTrack.com", "password123")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected exact-match lookup, got %v", err)
	}
}

func TestMockVerifier_CancelledContext(t *testing.T) {
	v := NewMockVerifier()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Verify(ctx, "admin@meditrack.com", "password123")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
