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

// UserService implements account management.
type UserService struct {
	users        ports.UserRepository
	reservations ports.ReservationRepository
	hasher       ports.PasswordHasher
	log          zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	reservations ports.ReservationRepository,
	hasher ports.PasswordHasher,
	log zerolog.Logger,
) *UserService {
	return &UserService{users: users, reservations: reservations, hasher: hasher, log: log}
}

func (s *UserService) List(ctx context.Context, p *domain.Principal) ([]*domain.User, error) {
	if err := policy.AdminOnly.Allow(p); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Get lets admins read any account and users read their own.
func (s *UserService) Get(ctx context.Context, p *domain.Principal, citizenID string) (*domain.User, error) {
	return policy.Authorize(ctx, p, policy.OwnerOrAdmin, s.loadUser(citizenID))
}

func (s *UserService) Update(ctx context.Context, p *domain.Principal, citizenID string, in ports.UpdateUserInput) error {
	user, err := policy.Authorize(ctx, p, policy.AdminOnly, s.loadUser(citizenID))
	if err != nil {
		return err
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return domain.ErrMalformed
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return err
	}

	previous := user.Username
	user.Username = username
	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	if previous != user.Username {
		moved, err := s.reservations.ReassignOwner(ctx, previous, user.Username)
		if err != nil {
			return fmt.Errorf("reassign reservations of %q: %w", previous, err)
		}
		s.log.Info().Str("from", previous).Str("to", user.Username).Int64("reservations", moved).Msg("user renamed")
	}

	s.log.Info().Str("cedula", citizenID).Str("by", p.Username()).Msg("user updated")
	return nil
}

// Delete removes the account and every reservation it owns.
func (s *UserService) Delete(ctx context.Context, p *domain.Principal, citizenID string) error {
	user, err := policy.Authorize(ctx, p, policy.AdminOnly, s.loadUser(citizenID))
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}

	removed, err := s.reservations.DeleteByOwner(ctx, user.Username)
	if err != nil {
		return fmt.Errorf("delete reservations of %q: %w", user.Username, err)
	}

	s.log.Info().
		Str("username", user.Username).
		Str("by", p.Username()).
		Int64("reservations", removed).
		Msg("user deleted")
	return nil
}

func (s *UserService) loadUser(citizenID string) policy.Loader[*domain.User] {
	return func(ctx context.Context) (*domain.User, string, error) {
		user, err := s.users.FindByCitizenID(ctx, citizenID)
		if err != nil {
			return nil, "", err
		}
		return user, user.Username, nil
	}
}
