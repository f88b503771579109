package ports

import (
	"context"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

// UpdateUserInput carries an admin update. An empty Password keeps the
// current hash.
type UpdateUserInput struct {
	Username string
	Password string
	Role     string
}

// UserService defines account management use cases. Every method enforces
// the authorization policy for the given principal.
type UserService interface {
	List(ctx context.Context, p *domain.Principal) ([]*domain.User, error)
	Get(ctx context.Context, p *domain.Principal, citizenID string) (*domain.User, error)
	Update(ctx context.Context, p *domain.Principal, citizenID string, input UpdateUserInput) error
	Delete(ctx context.Context, p *domain.Principal, citizenID string) error
}
