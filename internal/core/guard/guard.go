// Package guard implements the navigation route guard: a pure, synchronous
// decision function over the current session snapshot and a requested path.
// It holds no state of its own and is re-evaluated on every navigation
// attempt.
package guard

import (
	"strings"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// Well-known navigation targets.
const (
	LoginPath   = "/login"
	DefaultPath = "/"
	AdminPrefix = "/admin"
)

// DecisionKind is the guard's three-state outcome.
type DecisionKind int

const (
	// Unresolved means the session is still loading; render a waiting
	// indicator and do not redirect.
	Unresolved DecisionKind = iota
	// Allowed means the requested target may render.
	Allowed
	// Denied means the navigation is rejected and RedirectTo applies.
	Denied
)

// String returns the kind's wire/log token.
func (k DecisionKind) String() string {
	switch k {
	case Unresolved:
		return "unresolved"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	}
	return "unknown"
}

// Decision is the outcome of evaluating one navigation attempt.
type Decision struct {
	Kind DecisionKind
	// RedirectTo is set only when Kind is Denied.
	RedirectTo string
	// ReturnTo remembers the originally requested path so the post-login flow
	// can send the user back to it. Set only on redirect-to-login denials.
	ReturnTo string
}

// Evaluate decides whether the requested path may render given the session
// snapshot. An unauthenticated user is sent to the login entry point; an
// authenticated user who fails the admin-prefix rule is sent to the default
// landing path instead, since they hold a valid identity and only lack
// authorization for this subtree.
func Evaluate(s domain.Session, path string) Decision {
	if s.Loading {
		return Decision{Kind: Unresolved}
	}

	if s.User == nil {
		return Decision{Kind: Denied, RedirectTo: LoginPath, ReturnTo: path}
	}

	// The admin rule is prefix-based on purpose: one rule covers the whole
	// /admin subtree rather than enumerating each admin route.
	if strings.HasPrefix(path, AdminPrefix) && !isAdmin(s.User.Role) {
		return Decision{Kind: Denied, RedirectTo: DefaultPath}
	}

	return Decision{Kind: Allowed}
}

// isAdmin matches exhaustively over the closed role set so that adding a role
// forces this decision point to be revisited.
func isAdmin(r domain.Role) bool {
	switch r {
	case domain.RoleAdmin:
		return true
	case domain.RoleDoctor, domain.RoleNurse, domain.RoleReceptionist, domain.RolePatient:
		return false
	}
	return false
}
