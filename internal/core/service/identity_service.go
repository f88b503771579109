package service

import (
	"context"

	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/ports"
)

// IdentityService resolves usernames to principals. It is the lookup the
// authentication middleware runs once per authenticated request.
type IdentityService struct {
	users ports.UserRepository
}

func NewIdentityService(users ports.UserRepository) *IdentityService {
	return &IdentityService{users: users}
}

// Resolve returns domain.ErrUserNotFound when the account no longer exists.
func (s *IdentityService) Resolve(ctx context.Context, username string) (*domain.Principal, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}
