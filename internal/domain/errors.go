package domain

import "errors"

// Domain errors. Services return these (possibly wrapped); the delivery layer
// matches them with errors.Is to choose status codes.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRegistrationNotFound indicates a cancellation targeted a registration
	// that does not exist.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrPastEvent indicates a registration attempt on an event that has
	// already started.
	ErrPastEvent = errors.New("event has already started")

	// ErrAlreadyRegistered indicates the user already holds a registration for
	// the event.
	ErrAlreadyRegistered = errors.New("user already registered for event")

	// ErrEventFull indicates the event has reached its capacity.
	ErrEventFull = errors.New("event at full capacity")

	// ErrTransient indicates a retryable storage conflict that persisted past
	// the internal retry budget. The client may retry the request.
	ErrTransient = errors.New("transient storage conflict")

	// ErrDuplicateEmail indicates the email address is already taken.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidInput indicates a business-rule validation failure.
	ErrInvalidInput = errors.New("invalid input")
)
