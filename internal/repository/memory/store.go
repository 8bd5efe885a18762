// Package memory provides an in-memory implementation of the storage
// interfaces for tests and database-less development runs. Admission control
// uses a per-event mutex held only for the duration of the check-and-insert,
// so registrations for different events never contend.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventregistry/internal/domain"
)

// Store holds events, users, and registrations in memory.
type Store struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
	users  map[string]*domain.User
	// regs is keyed by event ID, then user ID.
	regs map[string]map[string]*domain.Registration

	admissionMu sync.Mutex
	admission   map[string]*sync.Mutex
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		events:    make(map[string]*domain.Event),
		users:     make(map[string]*domain.User),
		regs:      make(map[string]map[string]*domain.Registration),
		admission: make(map[string]*sync.Mutex),
	}
}

// EventRepository returns a domain.EventRepository view of the store.
func (s *Store) EventRepository() domain.EventRepository { return &eventRepo{s: s} }

// UserRepository returns a domain.UserRepository view of the store.
func (s *Store) UserRepository() domain.UserRepository { return &userRepo{s: s} }

// RegistrationLedger returns a domain.RegistrationLedger view of the store.
func (s *Store) RegistrationLedger() domain.RegistrationLedger { return &ledger{s: s} }

// CapacityGuard returns a domain.CapacityGuard view of the store.
func (s *Store) CapacityGuard() domain.CapacityGuard { return &guard{s: s} }

// admissionLock returns the mutex that serialises admissions for one event.
func (s *Store) admissionLock(eventID string) *sync.Mutex {
	s.admissionMu.Lock()
	defer s.admissionMu.Unlock()
	l, ok := s.admission[eventID]
	if !ok {
		l = &sync.Mutex{}
		s.admission[eventID] = l
	}
	return l
}

type eventRepo struct {
	s *Store
}

func (r *eventRepo) Create(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.events[e.ID] = &cp
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *eventRepo) ListUpcoming(ctx context.Context, after time.Time) ([]*domain.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	events := make([]*domain.Event, 0)
	for _, e := range r.s.events {
		if e.StartAt.After(after) {
			cp := *e
			events = append(events, &cp)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].StartAt.Equal(events[j].StartAt) {
			return events[i].StartAt.Before(events[j].StartAt)
		}
		return strings.ToLower(events[i].Location) < strings.ToLower(events[j].Location)
	})
	return events, nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.events, id)
	delete(r.s.regs, id)
	return nil
}

type userRepo struct {
	s *Store
}

func (r *userRepo) Create(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type ledger struct {
	s *Store
}

func (l *ledger) CountForEvent(ctx context.Context, eventID string) (int, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return len(l.s.regs[eventID]), nil
}

func (l *ledger) ExistsForEventAndUser(ctx context.Context, eventID, userID string) (bool, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	_, ok := l.s.regs[eventID][userID]
	return ok, nil
}

func (l *ledger) Insert(ctx context.Context, reg *domain.Registration) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	byUser, ok := l.s.regs[reg.EventID]
	if !ok {
		byUser = make(map[string]*domain.Registration)
		l.s.regs[reg.EventID] = byUser
	}
	if _, exists := byUser[reg.UserID]; exists {
		return domain.ErrAlreadyRegistered
	}
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	cp := *reg
	byUser[reg.UserID] = &cp
	return nil
}

func (l *ledger) Release(ctx context.Context, eventID, userID string) (bool, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	byUser := l.s.regs[eventID]
	if _, ok := byUser[userID]; !ok {
		return false, nil
	}
	delete(byUser, userID)
	return true, nil
}

func (l *ledger) ListAttendees(ctx context.Context, eventID string) ([]*domain.EventAttendee, error) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	regs := make([]*domain.Registration, 0, len(l.s.regs[eventID]))
	for _, reg := range l.s.regs[eventID] {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].CreatedAt.Before(regs[j].CreatedAt) })

	attendees := make([]*domain.EventAttendee, 0, len(regs))
	for _, reg := range regs {
		a := &domain.EventAttendee{UserID: reg.UserID}
		if u, ok := l.s.users[reg.UserID]; ok {
			a.Name = u.Name
			a.Email = u.Email
		}
		attendees = append(attendees, a)
	}
	return attendees, nil
}

type guard struct {
	s *Store
}

func (g *guard) TryReserve(ctx context.Context, event *domain.Event, userID string, now time.Time) (*domain.Registration, error) {
	// Serialise the check-and-insert per event; other events proceed freely.
	lock := g.s.admissionLock(event.ID)
	lock.Lock()
	defer lock.Unlock()

	g.s.mu.RLock()
	_, ok := g.s.events[event.ID]
	g.s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	if !now.Before(event.StartAt) {
		return nil, domain.ErrPastEvent
	}

	l := &ledger{s: g.s}
	exists, err := l.ExistsForEventAndUser(ctx, event.ID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}
	count, err := l.CountForEvent(ctx, event.ID)
	if err != nil {
		return nil, err
	}
	if count >= event.Capacity {
		return nil, domain.ErrEventFull
	}

	reg := domain.NewRegistration(event.ID, userID, now)
	if err := l.Insert(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}
