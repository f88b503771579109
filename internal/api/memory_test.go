package api

import (
	"context"
	"strconv"
	"sync"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

// In-memory repositories backing the router tests.

type memUsers struct {
	mu     sync.Mutex
	byID   map[string]domain.User
	nextID int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]domain.User{}} }

func (r *memUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == u.Username || existing.CitizenID == u.CitizenID {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := *u
	created.ID = "u" + strconv.Itoa(r.nextID)
	created.Version = 1
	r.byID[created.ID] = created
	return &created, nil
}

func (r *memUsers) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *memUsers) FindByCitizenID(_ context.Context, citizenID string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.CitizenID == citizenID })
}

func (r *memUsers) List(context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

func (r *memUsers) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[u.ID]
	if !ok || stored.Version != u.Version {
		return domain.ErrConflict
	}
	u.Version++
	r.byID[u.ID] = *u
	return nil
}

func (r *memUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type memReservations struct {
	mu     sync.Mutex
	byID   map[string]domain.Reservation
	nextID int
}

func newMemReservations() *memReservations {
	return &memReservations{byID: map[string]domain.Reservation{}}
}

func (s *memReservations) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	created := *r
	created.ID = "r" + strconv.Itoa(s.nextID)
	created.Version = 1
	s.byID[created.ID] = created
	return &created, nil
}

func (s *memReservations) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return &r, nil
}

func (s *memReservations) collect(keep func(domain.Reservation) bool) []*domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.Reservation{}
	for _, r := range s.byID {
		if keep(r) {
			r := r
			out = append(out, &r)
		}
	}
	return out
}

func (s *memReservations) FindByOwner(_ context.Context, owner string) ([]*domain.Reservation, error) {
	return s.collect(func(r domain.Reservation) bool { return r.Owner == owner }), nil
}

func (s *memReservations) List(context.Context) ([]*domain.Reservation, error) {
	return s.collect(func(domain.Reservation) bool { return true }), nil
}

func (s *memReservations) Update(_ context.Context, r *domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byID[r.ID]
	if !ok || stored.Version != r.Version {
		return domain.ErrConflict
	}
	r.Version++
	s.byID[r.ID] = *r
	return nil
}

func (s *memReservations) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return domain.ErrReservationNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *memReservations) ReassignOwner(_ context.Context, from, to string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, r := range s.byID {
		if r.Owner == from {
			r.Owner = to
			s.byID[id] = r
			n++
		}
	}
	return n, nil
}

func (s *memReservations) DeleteByOwner(_ context.Context, owner string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, r := range s.byID {
		if r.Owner == owner {
			delete(s.byID, id)
			n++
		}
	}
	return n, nil
}
