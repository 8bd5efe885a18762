package domain

import (
	"context"
	"time"
)

// Registration represents an accepted registration of a user for an event.
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRegistration creates a new Registration. ID is typically set by the repository on create.
func NewRegistration(eventID, userID string, createdAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

// EventAttendee is a registered user as exposed in event details.
type EventAttendee struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// RegistrationLedger is the authoritative store of accepted registrations.
// CountForEvent and ExistsForEventAndUser are only meaningful for admission
// decisions when read inside a CapacityGuard atomicity scope; on their own
// they are snapshots for reporting.
type RegistrationLedger interface {
	CountForEvent(ctx context.Context, eventID string) (int, error)
	ExistsForEventAndUser(ctx context.Context, eventID, userID string) (bool, error)
	// Insert writes a new registration. Returns ErrAlreadyRegistered if the
	// (event_id, user_id) uniqueness constraint is violated concurrently.
	Insert(ctx context.Context, reg *Registration) error
	// Release deletes the registration if present and reports whether a row
	// was removed. A no-op delete returns false, not an error.
	Release(ctx context.Context, eventID, userID string) (bool, error)
	// ListAttendees returns the registered users for an event in
	// registration order.
	ListAttendees(ctx context.Context, eventID string) ([]*EventAttendee, error)
}

// CapacityGuard admits or rejects a registration attempt. The duplicate
// check, capacity check, and insert execute as one atomic unit with respect
// to concurrent TryReserve and Release calls on the same event; calls on
// different events never contend.
type CapacityGuard interface {
	// TryReserve returns the created registration, or ErrPastEvent,
	// ErrAlreadyRegistered, ErrEventFull, ErrNotFound (event row gone), or
	// ErrTransient after bounded internal retries.
	TryReserve(ctx context.Context, event *Event, userID string, now time.Time) (*Registration, error)
}

// RegistrationService defines the public registration operations. The HTTP
// layer calls only this interface, never the ledger or guard directly.
type RegistrationService interface {
	Register(ctx context.Context, eventID, userID string) (*Registration, error)
	Cancel(ctx context.Context, eventID, userID string) error
	Stats(ctx context.Context, eventID string) (*EventStats, error)
}
