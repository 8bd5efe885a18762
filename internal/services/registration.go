package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventregistry/internal/domain"
)

type registrationService struct {
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
	ledger    domain.RegistrationLedger
	guard     domain.CapacityGuard
	emails    domain.EmailService
	logger    *slog.Logger
	now       func() time.Time
}

// NewRegistrationService creates a RegistrationService. The email service may
// be nil, in which case no confirmation emails are sent.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	ledger domain.RegistrationLedger,
	guard domain.CapacityGuard,
	emails domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		ledger:    ledger,
		guard:     guard,
		emails:    emails,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *registrationService) Register(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	reg, err := s.guard.TryReserve(ctx, event, userID, s.now())
	if err != nil {
		// Admission outcomes surface as-is so the transport layer can map
		// them to status codes; anything else is an unexpected failure.
		if errors.Is(err, domain.ErrPastEvent) ||
			errors.Is(err, domain.ErrAlreadyRegistered) ||
			errors.Is(err, domain.ErrEventFull) ||
			errors.Is(err, domain.ErrNotFound) ||
			errors.Is(err, domain.ErrTransient) {
			return nil, err
		}
		return nil, fmt.Errorf("reserve registration: %w", err)
	}

	s.sendConfirmation(event, userID)
	return reg, nil
}

// sendConfirmation fires the confirmation email without blocking the request.
// Failures are logged, never surfaced: the reservation is already committed.
func (s *registrationService) sendConfirmation(event *domain.Event, userID string) {
	if s.emails == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			s.logger.Warn("confirmation email skipped", "user_id", userID, "err", err)
			return
		}
		data := &domain.RegistrationConfirmationEmailData{
			Email:      user.Email,
			Name:       user.Name,
			EventTitle: event.Title,
			EventDate:  event.StartAt.Format(time.RFC1123),
			Location:   event.Location,
		}
		if err := s.emails.SendRegistrationConfirmation(ctx, data); err != nil {
			s.logger.Warn("confirmation email failed", "user_id", userID, "event_id", event.ID, "err", err)
		}
	}()
}

func (s *registrationService) Cancel(ctx context.Context, eventID, userID string) error {
	released, err := s.ledger.Release(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("release registration: %w", err)
	}
	if !released {
		return domain.ErrRegistrationNotFound
	}
	return nil
}

func (s *registrationService) Stats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	count, err := s.ledger.CountForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	stats, err := domain.CalculateStats(event.Capacity, count)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
