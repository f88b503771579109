package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/restaurante/reservations-api/internal/core/domain"
	"github.com/restaurante/reservations-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenCodec
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

// NewAuthService wires the service. A nil throttle disables login throttling.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenCodec,
	throttle ports.LoginThrottle,
	log zerolog.Logger,
) *AuthService {
	if throttle == nil {
		throttle = noopThrottle{}
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, throttle: throttle, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.CitizenID = strings.TrimSpace(in.CitizenID)
	if in.Username == "" || in.Password == "" || in.CitizenID == "" {
		return nil, domain.ErrMalformed
	}

	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		CitizenID:    in.CitizenID,
		Username:     in.Username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Stringer("role", created.Role).Msg("user registered")
	return created, nil
}

// Login never reveals whether the username exists: unknown users and wrong
// passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	allowed, err := s.throttle.Allow(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, allowing attempt")
	} else if !allowed {
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	if err := s.throttle.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
	}
	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	return token, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
	s.log.Info().Str("username", username).Msg("login rejected")
}

type noopThrottle struct{}

func (noopThrottle) Allow(context.Context, string) (bool, error) { return true, nil }
func (noopThrottle) RecordFailure(context.Context, string) error { return nil }
func (noopThrottle) Reset(context.Context, string) error         { return nil }
