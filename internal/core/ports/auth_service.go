package ports

import (
	"context"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

// RegisterInput carries a new account as submitted by the client. Role is
// the raw wire value ("admin", "ROLE_USER", ...).
type RegisterInput struct {
	CitizenID string
	Username  string
	Password  string
	Role      string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies the credentials and returns a signed token.
	Login(ctx context.Context, username, password string) (string, error)
}
