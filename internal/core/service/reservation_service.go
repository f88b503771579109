package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/policy"
	"github.com/restaurante/reservations-api/internal/core/ports"
)

// ReservationService implements reservation use cases.
type ReservationService struct {
	repo ports.ReservationRepository
	log  zerolog.Logger
}

func NewReservationService(repo ports.ReservationRepository, log zerolog.Logger) *ReservationService {
	return &ReservationService{repo: repo, log: log}
}

func (s *ReservationService) List(ctx context.Context, p *domain.Principal) ([]*domain.Reservation, error) {
	if err := policy.AdminOnly.Allow(p); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// ListMine returns the caller's own reservations.
func (s *ReservationService) ListMine(ctx context.Context, p *domain.Principal) ([]*domain.Reservation, error) {
	if err := policy.Members.Allow(p); err != nil {
		return nil, err
	}
	return s.repo.FindByOwner(ctx, p.Username())
}

func (s *ReservationService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.Reservation, error) {
	return policy.Authorize(ctx, p, policy.OwnerOrAdmin, s.load(id))
}

// Create records a reservation owned by the caller.
func (s *ReservationService) Create(ctx context.Context, p *domain.Principal, in ports.ReservationInput) (*domain.Reservation, error) {
	if err := policy.Members.Allow(p); err != nil {
		return nil, err
	}
	if err := checkReservation(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Reservation{
		Owner:        p.Username(),
		CitizenID:    strings.TrimSpace(in.CitizenID),
		CustomerName: strings.TrimSpace(in.CustomerName),
		Date:         in.Date,
		PartySize:    in.PartySize,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", created.ID).Str("owner", created.Owner).Str("date", created.Date).Msg("reservation created")
	return created, nil
}

// Update rewrites the editable fields. Owner and citizen id never change.
func (s *ReservationService) Update(ctx context.Context, p *domain.Principal, id string, in ports.ReservationInput) error {
	r, err := policy.Authorize(ctx, p, policy.OwnerOrAdmin, s.load(id))
	if err != nil {
		return err
	}
	if err := checkReservation(in); err != nil {
		return err
	}

	r.CustomerName = strings.TrimSpace(in.CustomerName)
	r.Date = in.Date
	r.PartySize = in.PartySize
	r.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, r); err != nil {
		return err
	}

	s.log.Info().Str("id", r.ID).Str("by", p.Username()).Msg("reservation updated")
	return nil
}

func (s *ReservationService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	r, err := policy.Authorize(ctx, p, policy.OwnerOrAdmin, s.load(id))
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, r.ID); err != nil {
		return err
	}

	s.log.Info().Str("id", r.ID).Str("by", p.Username()).Msg("reservation deleted")
	return nil
}

func (s *ReservationService) load(id string) policy.Loader[*domain.Reservation] {
	return func(ctx context.Context) (*domain.Reservation, string, error) {
		r, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, "", err
		}
		return r, r.Owner, nil
	}
}

func checkReservation(in ports.ReservationInput) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", domain.ErrMalformed)
	}
	if _, err := time.Parse(domain.DateLayout, in.Date); err != nil {
		return fmt.Errorf("%w: date %q must use %s", domain.ErrMalformed, in.Date, domain.DateLayout)
	}
	if in.PartySize < 1 {
		return fmt.Errorf("%w: party size must be positive", domain.ErrMalformed)
	}
	return nil
}
