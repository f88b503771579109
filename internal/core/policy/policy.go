// Package policy evaluates per-operation authorization rules.
//
// A rule is checked in two steps. The role gate runs first and needs nothing
// but the principal. Only when it passes is the target resource loaded; a
// failed lookup ends evaluation with the lookup error (typically a not-found
// sentinel) before ownership is considered. Every evaluation ends in exactly
// one Decision.
package policy

import (
	"context"
	"errors"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

// Decision is the outcome of an authorization evaluation.
type Decision uint8

const (
	Proceed Decision = iota
	Unauthenticated
	Forbidden
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Rule declares who may run an operation.
type Rule struct {
	// Roles lists the accepted roles. Empty accepts any authenticated principal.
	Roles []domain.Role
	// Owned requires the caller to own the loaded resource unless they are
	// an admin.
	Owned bool
}

var (
	AnyAuthenticated = Rule{}
	AdminOnly        = Rule{Roles: []domain.Role{domain.RoleAdmin}}
	Members          = Rule{Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser}}
	OwnerOrAdmin     = Rule{Owned: true}
)

// Allow applies the role gate.
func (r Rule) Allow(p *domain.Principal) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if len(r.Roles) > 0 && !p.HasAnyRole(r.Roles...) {
		return domain.ErrForbidden
	}
	return nil
}

// AllowOwner applies the ownership gate against a resource's owner.
func AllowOwner(p *domain.Principal, owner string) error {
	if p == nil {
		return domain.ErrUnauthenticated
	}
	if p.IsAdmin() || p.Username() == owner {
		return nil
	}
	return domain.ErrForbidden
}

// Loader fetches the target resource and reports its owner.
type Loader[T any] func(ctx context.Context) (resource T, owner string, err error)

// Authorize runs the role gate, then load, then (for owned rules) the
// ownership gate, and returns the loaded resource on Proceed.
func Authorize[T any](ctx context.Context, p *domain.Principal, rule Rule, load Loader[T]) (T, error) {
	var zero T
	if err := rule.Allow(p); err != nil {
		return zero, err
	}

	res, owner, err := load(ctx)
	if err != nil {
		return zero, err
	}

	if rule.Owned {
		if err := AllowOwner(p, owner); err != nil {
			return zero, err
		}
	}
	return res, nil
}

// Classify maps an error returned from a guarded operation to its Decision.
// Errors that are not authorization outcomes classify as Proceed.
func Classify(err error) Decision {
	switch {
	case err == nil:
		return Proceed
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrInvalidCredentials):
		return Unauthenticated
	case errors.Is(err, domain.ErrForbidden):
		return Forbidden
	case errors.Is(err, domain.ErrReservationNotFound), errors.Is(err, domain.ErrUserNotFound):
		return NotFound
	default:
		return Proceed
	}
}
