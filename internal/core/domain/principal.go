package domain

import (
	"context"
	"slices"
)

// Principal is the request-scoped, read-only view of an authenticated user.
// It is built once by the authentication middleware and never mutated.
type Principal struct {
	username string
	roles    []Role
}

func NewPrincipal(username string, roles ...Role) *Principal {
	return &Principal{username: username, roles: slices.Clone(roles)}
}

func (p *Principal) Username() string { return p.username }

// Roles returns a copy of the granted roles.
func (p *Principal) Roles() []Role { return slices.Clone(p.roles) }

// HasAnyRole reports whether the principal holds at least one of roles.
func (p *Principal) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if slices.Contains(p.roles, r) {
			return true
		}
	}
	return false
}

func (p *Principal) IsAdmin() bool { return p.HasAnyRole(RoleAdmin) }

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal attached to ctx, or nil for
// anonymous requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
