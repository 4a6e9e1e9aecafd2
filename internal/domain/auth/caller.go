package auth

import "context"

// Role enum
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// Caller identifies who is making a request and how far they may see.
// It is built once from the JWT claims in the HTTP middleware and passed
// explicitly into every service call; services never read claims themselves.
type Caller struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// CanSeeAll reports whether the caller may read rows belonging to other
// employees. Non-privileged callers are always scoped to their own employee id.
func (c Caller) CanSeeAll() bool {
	return c.Role == RoleAdmin || c.Role == RoleHR
}

type callerKey struct{}

// WithCaller stores the caller in the context.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFromContext extracts the caller placed by the auth middleware.
func CallerFromContext(ctx context.Context) (Caller, error) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	if !ok {
		return Caller{}, ErrMissingCaller
	}
	return c, nil
}
