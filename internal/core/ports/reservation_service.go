package ports

import (
	"context"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

// ReservationInput carries client-editable reservation fields. There is no
// owner field: ownership always comes from the principal.
type ReservationInput struct {
	CitizenID    string
	CustomerName string
	Date         string
	PartySize    int
}

// ReservationService defines reservation use cases. Every method enforces
// the authorization policy for the given principal.
type ReservationService interface {
	List(ctx context.Context, p *domain.Principal) ([]*domain.Reservation, error)
	ListMine(ctx context.Context, p *domain.Principal) ([]*domain.Reservation, error)
	Get(ctx context.Context, p *domain.Principal, id string) (*domain.Reservation, error)
	Create(ctx context.Context, p *domain.Principal, input ReservationInput) (*domain.Reservation, error)
	// Update changes customer name, date and party size.
	Update(ctx context.Context, p *domain.Principal, id string, input ReservationInput) error
	Delete(ctx context.Context, p *domain.Principal, id string) error
}
