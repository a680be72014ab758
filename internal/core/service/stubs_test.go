package service

import (
	"context"
	"strings"
	"sync"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

// Map-backed stubs shared by the service tests. All return clones so tests
// observe only what was persisted.

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{nextID: 1, users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Companies = append([]domain.CompanyRef(nil), u.Companies...)
	clone.Vehicles = append([]domain.Vehicle(nil), u.Vehicles...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrUserExists
		}
	}
	clone := cloneUser(user)
	clone.ID = r.nextID
	r.nextID++
	r.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsernameOrEmail(_ context.Context, username, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) AttachVehicle(_ context.Context, driverID int64, vehicle domain.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[driverID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Vehicles = append(u.Vehicles, vehicle)
	return nil
}

// add seeds a user with a fixed id, bypassing duplicate checks.
func (r *stubUserRepo) add(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	} else if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	r.users[u.ID] = cloneUser(u)
	return u
}

type stubTripRepo struct {
	mu     sync.Mutex
	nextID int64
	trips  map[int64]*domain.Trip
}

func newStubTripRepo() *stubTripRepo {
	return &stubTripRepo{nextID: 1, trips: make(map[int64]*domain.Trip)}
}

func cloneTrip(t *domain.Trip) *domain.Trip {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTripRepo) Create(_ context.Context, t *domain.Trip) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneTrip(t)
	clone.ID = r.nextID
	r.nextID++
	r.trips[clone.ID] = cloneTrip(clone)
	return clone, nil
}

func (r *stubTripRepo) FindByID(_ context.Context, id int64) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trips[id]
	if !ok {
		return nil, domain.ErrTripNotFound
	}
	return cloneTrip(t), nil
}

func (r *stubTripRepo) List(_ context.Context, scope ports.TripScope) ([]*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		if scope.DriverID != 0 && t.DriverID != scope.DriverID {
			continue
		}
		if scope.PassengerID != 0 && t.PassengerID != scope.PassengerID {
			continue
		}
		out = append(out, cloneTrip(t))
	}
	return out, nil
}

func (r *stubTripRepo) Update(_ context.Context, t *domain.Trip) (*domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[t.ID]; !ok {
		return nil, domain.ErrTripNotFound
	}
	r.trips[t.ID] = cloneTrip(t)
	return cloneTrip(t), nil
}

func (r *stubTripRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[id]; !ok {
		return domain.ErrTripNotFound
	}
	delete(r.trips, id)
	return nil
}

func (r *stubTripRepo) add(t *domain.Trip) *domain.Trip {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == 0 {
		t.ID = r.nextID
		r.nextID++
	} else if t.ID >= r.nextID {
		r.nextID = t.ID + 1
	}
	r.trips[t.ID] = cloneTrip(t)
	return t
}

type stubVehicleRepo struct {
	mu       sync.Mutex
	nextID   int64
	vehicles map[int64]*domain.Vehicle
}

func newStubVehicleRepo() *stubVehicleRepo {
	return &stubVehicleRepo{nextID: 1, vehicles: make(map[int64]*domain.Vehicle)}
}

func cloneVehicle(v *domain.Vehicle) *domain.Vehicle {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

func (r *stubVehicleRepo) Create(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneVehicle(v)
	clone.ID = r.nextID
	r.nextID++
	r.vehicles[clone.ID] = cloneVehicle(clone)
	return clone, nil
}

func (r *stubVehicleRepo) FindByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, domain.ErrVehicleNotFound
	}
	return cloneVehicle(v), nil
}

func (r *stubVehicleRepo) FindByRegistration(_ context.Context, reg string) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.RegistrationNumber == reg {
			return cloneVehicle(v), nil
		}
	}
	return nil, domain.ErrVehicleNotFound
}

func (r *stubVehicleRepo) List(_ context.Context) ([]*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, cloneVehicle(v))
	}
	return out, nil
}

func (r *stubVehicleRepo) Update(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vehicles[v.ID]; !ok {
		return nil, domain.ErrVehicleNotFound
	}
	r.vehicles[v.ID] = cloneVehicle(v)
	return cloneVehicle(v), nil
}

func (r *stubVehicleRepo) add(v *domain.Vehicle) *domain.Vehicle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID == 0 {
		v.ID = r.nextID
		r.nextID++
	} else if v.ID >= r.nextID {
		r.nextID = v.ID + 1
	}
	r.vehicles[v.ID] = cloneVehicle(v)
	return v
}

type stubCompanyRepo struct {
	mu        sync.Mutex
	nextID    int64
	companies map[int64]*domain.Company
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{nextID: 1, companies: make(map[int64]*domain.Company)}
}

func (r *stubCompanyRepo) Create(_ context.Context, c *domain.Company) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.companies {
		if existing.Name == c.Name {
			return nil, domain.ErrCompanyExists
		}
	}
	clone := *c
	clone.ID = r.nextID
	r.nextID++
	stored := clone
	r.companies[clone.ID] = &stored
	return &clone, nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id int64) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCompanyRepo) FindByName(_ context.Context, name string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

func (r *stubCompanyRepo) List(_ context.Context) ([]*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Company, 0, len(r.companies))
	for _, c := range r.companies {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

type stubSessionStore struct {
	mu     sync.Mutex
	tokens map[string]int64
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{tokens: make(map[string]int64)}
}

func (s *stubSessionStore) Put(_ context.Context, token string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *stubSessionStore) Exists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tokens[token]
	return ok, nil
}

func (s *stubSessionStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

type stubAuditSink struct {
	mu     sync.Mutex
	events []domain.TripEvent
}

func (s *stubAuditSink) Record(ev domain.TripEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *stubAuditSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Action
	}
	return out
}
