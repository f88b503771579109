package ports

import (
	"context"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	FindByOwner(ctx context.Context, owner string) ([]*domain.Reservation, error)
	List(ctx context.Context) ([]*domain.Reservation, error)
	// Update follows the same optimistic versioning contract as
	// UserRepository.Update.
	Update(ctx context.Context, r *domain.Reservation) error
	Delete(ctx context.Context, id string) error
	// ReassignOwner moves every reservation of from to to.
	ReassignOwner(ctx context.Context, from, to string) (int64, error)
	DeleteByOwner(ctx context.Context, owner string) (int64, error)
}
