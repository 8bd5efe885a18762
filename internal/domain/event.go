package domain

import (
	"context"
	"time"
)

// Capacity bounds enforced on event creation.
const (
	MinCapacity = 1
	MaxCapacity = 1000
)

// Event represents an event with a fixed attendance capacity.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartAt   time.Time `json:"start_at"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title string, startAt time.Time, location string, capacity int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:     title,
		StartAt:   startAt,
		Location:  location,
		Capacity:  capacity,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// EventState is the derived lifecycle state of an event. It is never stored;
// it is recomputed from (now, start time, occupancy) on every read.
type EventState string

const (
	EventStateUpcoming EventState = "upcoming"
	EventStatePast     EventState = "past"
	EventStateFull     EventState = "full"
)

// StateOf derives the event state. A started event is past even when full.
func StateOf(now time.Time, event *Event, registered int) EventState {
	if !now.Before(event.StartAt) {
		return EventStatePast
	}
	if registered >= event.Capacity {
		return EventStateFull
	}
	return EventStateUpcoming
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// ListUpcoming returns events starting strictly after the given instant,
	// ordered by start time ascending, then location (case-insensitive).
	ListUpcoming(ctx context.Context, after time.Time) ([]*Event, error)
	// Delete removes the event and, by cascade, all its registrations.
	Delete(ctx context.Context, id string) error
}

// EventWithAttendees bundles an event with its derived state and registered attendees.
type EventWithAttendees struct {
	Event     *Event           `json:"event"`
	State     EventState       `json:"state"`
	Attendees []*EventAttendee `json:"attendees"`
}

// EventService defines event-facing business operations.
type EventService interface {
	CreateEvent(ctx context.Context, title string, startAt time.Time, location string, capacity int) (*Event, error)
	GetEventByID(ctx context.Context, id string) (*EventWithAttendees, error)
	ListUpcomingEvents(ctx context.Context) ([]*Event, error)
	DeleteEvent(ctx context.Context, id string) error
}
