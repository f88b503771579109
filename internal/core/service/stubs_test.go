package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/restaurante/reservations-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	nextID  int
	findErr error // if set, lookups return this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Username == user.Username || u.CitizenID == user.CitizenID {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("u%d", r.nextID)
	clone.Version = 1
	r.byID[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByCitizenID(_ context.Context, citizenID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.CitizenID == citizenID {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[user.ID]
	if !ok || stored.Version != user.Version {
		return domain.ErrConflict
	}
	for _, u := range r.byID {
		if u.ID != user.ID && u.Username == user.Username {
			return domain.ErrUserExists
		}
	}
	user.Version++
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubReservationRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Reservation
	nextID int
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{byID: make(map[string]*domain.Reservation)}
}

func cloneReservation(r *domain.Reservation) *domain.Reservation {
	clone := *r
	return &clone
}

func (s *stubReservationRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	clone := cloneReservation(r)
	clone.ID = fmt.Sprintf("r%d", s.nextID)
	clone.Version = 1
	s.byID[clone.ID] = clone
	return cloneReservation(clone), nil
}

func (s *stubReservationRepo) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return cloneReservation(r), nil
}

func (s *stubReservationRepo) FindByOwner(_ context.Context, owner string) ([]*domain.Reservation, error) {
	return s.filter(func(r *domain.Reservation) bool { return r.Owner == owner }), nil
}

func (s *stubReservationRepo) List(_ context.Context) ([]*domain.Reservation, error) {
	return s.filter(func(*domain.Reservation) bool { return true }), nil
}

func (s *stubReservationRepo) filter(keep func(*domain.Reservation) bool) []*domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*domain.Reservation{}
	for _, r := range s.byID {
		if keep(r) {
			out = append(out, cloneReservation(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *stubReservationRepo) Update(_ context.Context, r *domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byID[r.ID]
	if !ok || stored.Version != r.Version {
		return domain.ErrConflict
	}
	r.Version++
	s.byID[r.ID] = cloneReservation(r)
	return nil
}

func (s *stubReservationRepo) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return domain.ErrReservationNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *stubReservationRepo) ReassignOwner(_ context.Context, from, to string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.byID {
		if r.Owner == from {
			r.Owner = to
			n++
		}
	}
	return n, nil
}

func (s *stubReservationRepo) DeleteByOwner(_ context.Context, owner string) (int64, error) {
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

// plainHasher keeps tests fast; bcrypt is covered in the security package.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) bool  { return hash == "hashed:"+password }

type stubCodec struct {
	issued []string
}

func (c *stubCodec) Issue(subject string) (string, error) {
	c.issued = append(c.issued, subject)
	return "token-for-" + subject, nil
}
func (c *stubCodec) Validate(token, subject string) bool { return token == "token-for-"+subject }
func (c *stubCodec) ExtractSubject(string) (string, bool) { return "", false }

type stubThrottle struct {
	max      int
	failures map[string]int
	allowErr error
}

func newStubThrottle(max int) *stubThrottle {
	return &stubThrottle{max: max, failures: make(map[string]int)}
}

func (t *stubThrottle) Allow(_ context.Context, username string) (bool, error) {
	if t.allowErr != nil {
		return false, t.allowErr
	}
	return t.failures[username] < t.max, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	delete(t.failures, username)
	return nil
}
