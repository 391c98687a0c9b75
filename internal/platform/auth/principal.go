package auth

import (
	"context"

	"github.com/google/uuid"
)

// Roles recognised by the platform. A principal carries exactly one role;
// admin implies every other role at authorization checks.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
	RolePatient      = "patient"
)

// Principal identifies the authenticated caller. For patients the ID is the
// patient record ID, which is what ownership checks compare against.
type Principal struct {
	ID   uuid.UUID
	Role string
}

func (p Principal) IsPatient() bool { return p.Role == RolePatient }
func (p Principal) IsAdmin() bool   { return p.Role == RoleAdmin }

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the authenticated principal. The second
// return value is false when the request was not authenticated.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}
