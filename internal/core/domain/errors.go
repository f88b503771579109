package domain

import "errors"

var (
	ErrUnauthenticated     = errors.New("authentication required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbidden           = errors.New("access forbidden")
	ErrUserNotFound        = errors.New("user not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidRole         = errors.New("invalid role")
	ErrMalformed           = errors.New("malformed request")
	ErrConflict            = errors.New("resource was modified concurrently")
	ErrTooManyAttempts     = errors.New("too many failed login attempts")
)
