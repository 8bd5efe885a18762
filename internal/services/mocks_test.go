package services

import (
	"context"
	"time"

	"eventregistry/internal/domain"
)

type mockEventRepo struct {
	createFn       func(ctx context.Context, event *domain.Event) error
	getByIDFn      func(ctx context.Context, id string) (*domain.Event, error)
	listUpcomingFn func(ctx context.Context, after time.Time) ([]*domain.Event, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	return m.createFn(ctx, event)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockEventRepo) ListUpcoming(ctx context.Context, after time.Time) ([]*domain.Event, error) {
	return m.listUpcomingFn(ctx, after)
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockUserRepo struct {
	createFn  func(ctx context.Context, user *domain.User) error
	getByIDFn func(ctx context.Context, id string) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

type mockLedger struct {
	countFn         func(ctx context.Context, eventID string) (int, error)
	existsFn        func(ctx context.Context, eventID, userID string) (bool, error)
	insertFn        func(ctx context.Context, reg *domain.Registration) error
	releaseFn       func(ctx context.Context, eventID, userID string) (bool, error)
	listAttendeesFn func(ctx context.Context, eventID string) ([]*domain.EventAttendee, error)
}

func (m *mockLedger) CountForEvent(ctx context.Context, eventID string) (int, error) {
	return m.countFn(ctx, eventID)
}

func (m *mockLedger) ExistsForEventAndUser(ctx context.Context, eventID, userID string) (bool, error) {
	return m.existsFn(ctx, eventID, userID)
}

func (m *mockLedger) Insert(ctx context.Context, reg *domain.Registration) error {
	return m.insertFn(ctx, reg)
}

func (m *mockLedger) Release(ctx context.Context, eventID, userID string) (bool, error) {
	return m.releaseFn(ctx, eventID, userID)
}

func (m *mockLedger) ListAttendees(ctx context.Context, eventID string) ([]*domain.EventAttendee, error) {
	return m.listAttendeesFn(ctx, eventID)
}

type mockGuard struct {
	tryReserveFn func(ctx context.Context, event *domain.Event, userID string, now time.Time) (*domain.Registration, error)
}

func (m *mockGuard) TryReserve(ctx context.Context, event *domain.Event, userID string, now time.Time) (*domain.Registration, error) {
	return m.tryReserveFn(ctx, event, userID, now)
}

type mockEmailService struct {
	sent chan *domain.RegistrationConfirmationEmailData
}

func newMockEmailService() *mockEmailService {
	return &mockEmailService{sent: make(chan *domain.RegistrationConfirmationEmailData, 1)}
}

func (m *mockEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationConfirmationEmailData) error {
	m.sent <- data
	return nil
}
