package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventregistry/internal/delivery/http/helpers"
	"eventregistry/internal/domain"
)

const (
	testEventID = "3f2b8a60-9c1d-4e7a-b5c3-0d9f6e2a1b4c"
	testUserID  = "7a4e1c92-5b3f-4d08-a6e1-2c8b9f0d3e57"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, code string) {
	t.Helper()
	resp := decodeResponse(t, rec)
	require.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code)
}

type mockRegistrationService struct {
	registerFn func(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	cancelFn   func(ctx context.Context, eventID, userID string) error
	statsFn    func(ctx context.Context, eventID string) (*domain.EventStats, error)
}

func (m *mockRegistrationService) Register(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	return m.registerFn(ctx, eventID, userID)
}

func (m *mockRegistrationService) Cancel(ctx context.Context, eventID, userID string) error {
	return m.cancelFn(ctx, eventID, userID)
}

func (m *mockRegistrationService) Stats(ctx context.Context, eventID string) (*domain.EventStats, error) {
	return m.statsFn(ctx, eventID)
}

type mockEventService struct {
	createFn       func(ctx context.Context, title string, startAt time.Time, location string, capacity int) (*domain.Event, error)
	getByIDFn      func(ctx context.Context, id string) (*domain.EventWithAttendees, error)
	listUpcomingFn func(ctx context.Context) ([]*domain.Event, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (m *mockEventService) CreateEvent(ctx context.Context, title string, startAt time.Time, location string, capacity int) (*domain.Event, error) {
	return m.createFn(ctx, title, startAt, location, capacity)
}

func (m *mockEventService) GetEventByID(ctx context.Context, id string) (*domain.EventWithAttendees, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockEventService) ListUpcomingEvents(ctx context.Context) ([]*domain.Event, error) {
	return m.listUpcomingFn(ctx)
}

func (m *mockEventService) DeleteEvent(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

type mockUserService struct {
	createFn func(ctx context.Context, name, email string) (*domain.User, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	return m.createFn(ctx, name, email)
}
