package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventregistry/internal/delivery/http/helpers"
	"eventregistry/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Title    string    `json:"title"`
	StartAt  time.Time `json:"start_at"`
	Location string    `json:"location"`
	Capacity int       `json:"capacity"`
}

// Validate implements helpers.Validator.
func (c *CreateEventRequest) Validate() []string {
	var errs []string
	if len(strings.TrimSpace(c.Title)) < 5 {
		errs = append(errs, "title must be at least 5 characters")
	}
	if c.StartAt.IsZero() {
		errs = append(errs, "start_at is required (ISO 8601)")
	}
	if len(strings.TrimSpace(c.Location)) < 3 {
		errs = append(errs, "location must be at least 3 characters")
	}
	if c.Capacity < domain.MinCapacity || c.Capacity > domain.MaxCapacity {
		errs = append(errs, "capacity must be between 1 and 1000")
	}
	return errs
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event with a fixed capacity (1-1000) and a future start time.
// @Tags events
// @Accept json
// @Produce json
// @Param event body controllers.CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: BAD_REQUEST"
// @Failure 500 {object} helpers.APIResponse "error.code: INTERNAL_ERROR"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	event, err := c.Service.CreateEvent(r.Context(), req.Title, req.StartAt, req.Location, req.Capacity)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "error creating event")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  *domain.EventWithAttendees `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// GetEventByID godoc
// @Summary Get event details
// @Description Returns the event, its derived state (upcoming, past, full), and its attendees in registration order.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: BAD_REQUEST"
// @Failure 404 {object} helpers.APIResponse "error.code: EVENT_NOT_FOUND"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	details, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeEventNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "error fetching event")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// ListUpcomingSuccessResponse is the success response envelope for GET /events/upcoming/list (200).
type ListUpcomingSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListUpcoming godoc
// @Summary List upcoming events
// @Description Returns events that have not yet started, ordered by start time, then location (case-insensitive).
// @Tags events
// @Produce json
// @Success 200 {object} controllers.ListUpcomingSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: INTERNAL_ERROR"
// @Router /events/upcoming/list [get]
func (c *EventController) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListUpcomingEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "error fetching events")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and all its registrations.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "event deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: BAD_REQUEST"
// @Failure 404 {object} helpers.APIResponse "error.code: EVENT_NOT_FOUND"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeEventNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "error deleting event")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
