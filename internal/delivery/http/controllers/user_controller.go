package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"eventregistry/internal/delivery/http/helpers"
	"eventregistry/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateUserRequest is the request body for POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate implements helpers.Validator.
func (c *CreateUserRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if !emailRegex.MatchString(strings.TrimSpace(c.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// CreateUserSuccessResponse is the success response envelope for POST /users (201).
type CreateUserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateUser godoc
// @Summary Create a new user
// @Tags users
// @Accept json
// @Produce json
// @Param user body controllers.CreateUserRequest true "User data"
// @Success 201 {object} controllers.CreateUserSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: BAD_REQUEST or DUPLICATE_EMAIL"
// @Failure 500 {object} helpers.APIResponse "error.code: INTERNAL_ERROR"
// @Router /users [post]
func (c *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	user, err := c.Service.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeDuplicateEmail, "email already exists")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "error creating user")
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}
