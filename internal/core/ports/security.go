package ports

import (
	"context"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

// TokenCodec issues and checks signed identity tokens. None of its methods
// panic or return errors for bad input; they fail closed.
type TokenCodec interface {
	Issue(subject string) (string, error)
	// Validate reports whether token is authentic, unexpired and issued for
	// expectedSubject.
	Validate(token, expectedSubject string) bool
	// ExtractSubject returns the subject of an authentic, unexpired token. ok
	// is false on any parse, signature or expiry failure.
	ExtractSubject(token string) (subject string, ok bool)
}

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// IdentityResolver materializes the principal for a username.
type IdentityResolver interface {
	Resolve(ctx context.Context, username string) (*domain.Principal, error)
}

// LoginThrottle limits repeated failed logins per username.
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
