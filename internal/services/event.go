package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventregistry/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
	ledger    domain.RegistrationLedger
	now       func() time.Time
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, ledger domain.RegistrationLedger) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
		ledger:    ledger,
		now:       time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, title string, startAt time.Time, location string, capacity int) (*domain.Event, error) {
	title = strings.TrimSpace(title)
	location = strings.TrimSpace(location)
	if len(title) < 5 {
		return nil, fmt.Errorf("%w: title must be at least 5 characters", domain.ErrInvalidInput)
	}
	if len(location) < 3 {
		return nil, fmt.Errorf("%w: location must be at least 3 characters", domain.ErrInvalidInput)
	}
	if capacity < domain.MinCapacity || capacity > domain.MaxCapacity {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d", domain.ErrInvalidInput, domain.MinCapacity, domain.MaxCapacity)
	}
	if !startAt.After(s.now()) {
		return nil, fmt.Errorf("%w: event start must be in the future", domain.ErrInvalidInput)
	}

	now := s.now()
	event := domain.NewEvent(title, startAt, location, capacity, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.EventWithAttendees, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	attendees, err := s.ledger.ListAttendees(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.EventAttendee{}
	}
	return &domain.EventWithAttendees{
		Event:     event,
		State:     domain.StateOf(s.now(), event, len(attendees)),
		Attendees: attendees,
	}, nil
}

func (s *eventService) ListUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.ListUpcoming(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
