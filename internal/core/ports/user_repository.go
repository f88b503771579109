package ports

import (
	"context"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Duplicate username or citizen id yields
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByCitizenID(ctx context.Context, citizenID string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update replaces the stored user only if its version still equals
	// user.Version, then bumps user.Version. A stale version yields
	// domain.ErrConflict.
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
