package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"eventregistry/internal/delivery/http/helpers"
	"eventregistry/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// pathUUIDs extracts and validates eventID and userID path values. On failure
// it writes a 400 error and returns false.
func pathUUIDs(w http.ResponseWriter, r *http.Request) (eventID, userID string, ok bool) {
	eventID = r.PathValue("eventID")
	userID = r.PathValue("userID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return "", "", false
	}
	if !uuidRegex.MatchString(userID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid userID")
		return "", "", false
	}
	return eventID, userID, true
}

// RegisterMessage is the success payload for POST /events/{eventID}/register/{userID}.
type RegisterMessage struct {
	Message string `json:"message"`
}

// RegisterSuccessResponse is the success response envelope for POST /events/{eventID}/register/{userID} (201).
type RegisterSuccessResponse struct {
	Data  RegisterMessage   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Register godoc
// @Summary Register a user for an event
// @Description Atomically admits the registration against the event's capacity. Rejects duplicates, full events, and events that have already started.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 201 {object} controllers.RegisterSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: PAST_EVENT or FULL_CAPACITY or BAD_REQUEST"
// @Failure 404 {object} helpers.APIResponse "error.code: EVENT_NOT_FOUND"
// @Failure 409 {object} helpers.APIResponse "error.code: DUPLICATE_REGISTRATION"
// @Failure 503 {object} helpers.APIResponse "error.code: TRANSIENT"
// @Router /events/{eventID}/register/{userID} [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := pathUUIDs(w, r)
	if !ok {
		return
	}

	_, err := c.Service.Register(r.Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeEventNotFound, "event not found")
		case errors.Is(err, domain.ErrPastEvent):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodePastEvent, "cannot register for past events")
		case errors.Is(err, domain.ErrAlreadyRegistered):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeDuplicateRegistration, "user already registered")
		case errors.Is(err, domain.ErrEventFull):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeFullCapacity, "event at full capacity")
		case errors.Is(err, domain.ErrTransient):
			helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeTransient, "registration conflict, please retry")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "registration failed")
		}
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, RegisterMessage{Message: "Registration successful"})
}

// Cancel godoc
// @Summary Cancel a user's registration for an event
// @Description Removes the registration if it exists, freeing one seat.
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path string true "User ID (UUID)"
// @Success 204 "registration removed"
// @Failure 400 {object} helpers.APIResponse "error.code: BAD_REQUEST"
// @Failure 404 {object} helpers.APIResponse "error.code: REGISTRATION_NOT_FOUND"
// @Router /events/{eventID}/cancel/{userID} [delete]
func (c *RegistrationController) Cancel(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := pathUUIDs(w, r)
	if !ok {
		return
	}

	if err := c.Service.Cancel(r.Context(), eventID, userID); err != nil {
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeRegistrationNotFound, "registration not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "cancellation failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// StatsSuccessResponse is the success response envelope for GET /events/{eventID}/stats (200).
type StatsSuccessResponse struct {
	Data  *domain.EventStats `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// Stats godoc
// @Summary Get occupancy statistics for an event
// @Tags registrations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.StatsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: BAD_REQUEST"
// @Failure 404 {object} helpers.APIResponse "error.code: EVENT_NOT_FOUND"
// @Router /events/{eventID}/stats [get]
func (c *RegistrationController) Stats(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	stats, err := c.Service.Stats(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeEventNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "error fetching stats")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
