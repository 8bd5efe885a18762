package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventregistry/internal/domain"
)

func TestEventController_CreateEvent(t *testing.T) {
	startAt := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	svc := &mockEventService{
		createFn: func(_ context.Context, title string, at time.Time, location string, capacity int) (*domain.Event, error) {
			require.Equal(t, "Go Meetup Berlin", title)
			require.True(t, at.Equal(startAt))
			require.Equal(t, "Berlin", location)
			require.Equal(t, 50, capacity)
			return &domain.Event{ID: testEventID, Title: title, StartAt: at, Location: location, Capacity: capacity}, nil
		},
	}
	controller := NewEventController(testLogger(), svc)

	body := `{"title":"Go Meetup Berlin","start_at":"` + startAt.Format(time.RFC3339) + `","location":"Berlin","capacity":50}`
	r := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	rec := httptest.NewRecorder()
	controller.CreateEvent(rec, r)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, testEventID, data["id"])
}

func TestEventController_CreateEventRejectsBadBodies(t *testing.T) {
	controller := NewEventController(testLogger(), &mockEventService{
		createFn: func(_ context.Context, _ string, _ time.Time, _ string, _ int) (*domain.Event, error) {
			t.Fatal("service must not be reached")
			return nil, nil
		},
	})

	future := time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	tests := []struct {
		name string
		body string
	}{
		{"not json", `title=Go Meetup`},
		{"unknown field", `{"title":"Go Meetup Berlin","start_at":"` + future + `","location":"Berlin","capacity":50,"admin":true}`},
		{"short title", `{"title":"Expo","start_at":"` + future + `","location":"Berlin","capacity":50}`},
		{"missing start_at", `{"title":"Go Meetup Berlin","location":"Berlin","capacity":50}`},
		{"short location", `{"title":"Go Meetup Berlin","start_at":"` + future + `","location":"NY","capacity":50}`},
		{"zero capacity", `{"title":"Go Meetup Berlin","start_at":"` + future + `","location":"Berlin","capacity":0}`},
		{"excessive capacity", `{"title":"Go Meetup Berlin","start_at":"` + future + `","location":"Berlin","capacity":1001}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			controller.CreateEvent(rec, r)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			requireErrorCode(t, rec, "BAD_REQUEST")
		})
	}
}

func TestEventController_CreateEventPastStartRejectedByService(t *testing.T) {
	svc := &mockEventService{
		createFn: func(_ context.Context, _ string, _ time.Time, _ string, _ int) (*domain.Event, error) {
			return nil, domain.ErrInvalidInput
		},
	}
	controller := NewEventController(testLogger(), svc)

	body := `{"title":"Go Meetup Berlin","start_at":"2020-01-01T10:00:00Z","location":"Berlin","capacity":50}`
	r := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	rec := httptest.NewRecorder()
	controller.CreateEvent(rec, r)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	requireErrorCode(t, rec, "BAD_REQUEST")
}

func TestEventController_GetEventByID(t *testing.T) {
	svc := &mockEventService{
		getByIDFn: func(_ context.Context, id string) (*domain.EventWithAttendees, error) {
			require.Equal(t, testEventID, id)
			return &domain.EventWithAttendees{
				Event: &domain.Event{ID: id, Title: "Go Meetup Berlin", Capacity: 50},
				State: domain.EventStateUpcoming,
				Attendees: []*domain.EventAttendee{
					{UserID: testUserID, Name: "Ada", Email: "ada@example.com"},
				},
			}, nil
		},
	}
	controller := NewEventController(testLogger(), svc)

	r := httptest.NewRequest(http.MethodGet, "/events/"+testEventID, nil)
	r.SetPathValue("eventID", testEventID)
	rec := httptest.NewRecorder()
	controller.GetEventByID(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "upcoming", data["state"])
	attendees, ok := data["attendees"].([]any)
	require.True(t, ok)
	require.Len(t, attendees, 1)
}

func TestEventController_GetEventByIDNotFound(t *testing.T) {
	svc := &mockEventService{
		getByIDFn: func(_ context.Context, _ string) (*domain.EventWithAttendees, error) {
			return nil, domain.ErrNotFound
		},
	}
	controller := NewEventController(testLogger(), svc)

	r := httptest.NewRequest(http.MethodGet, "/events/"+testEventID, nil)
	r.SetPathValue("eventID", testEventID)
	rec := httptest.NewRecorder()
	controller.GetEventByID(rec, r)

	require.Equal(t, http.StatusNotFound, rec.Code)
	requireErrorCode(t, rec, "EVENT_NOT_FOUND")
}

func TestEventController_ListUpcoming(t *testing.T) {
	svc := &mockEventService{
		listUpcomingFn: func(_ context.Context) ([]*domain.Event, error) {
			return []*domain.Event{
				{ID: testEventID, Title: "Go Meetup Berlin"},
			}, nil
		},
	}
	controller := NewEventController(testLogger(), svc)

	r := httptest.NewRequest(http.MethodGet, "/events/upcoming/list", nil)
	rec := httptest.NewRecorder()
	controller.ListUpcoming(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Error)
	events, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, events, 1)
}

func TestEventController_DeleteEvent(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{"success", nil, http.StatusNoContent, ""},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "EVENT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockEventService{
				deleteFn: func(_ context.Context, id string) error {
					require.Equal(t, testEventID, id)
					return tt.serviceErr
				},
			}
			controller := NewEventController(testLogger(), svc)

			r := httptest.NewRequest(http.MethodDelete, "/events/"+testEventID, nil)
			r.SetPathValue("eventID", testEventID)
			rec := httptest.NewRecorder()
			controller.DeleteEvent(rec, r)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				requireErrorCode(t, rec, tt.wantCode)
			}
		})
	}
}
