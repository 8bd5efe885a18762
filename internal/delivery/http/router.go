package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistry/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	userController *controllers.UserController,
	registrationController *controllers.RegistrationController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("POST /users", userController.CreateUser)

	// Events
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events/upcoming/list", eventController.ListUpcoming)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("DELETE /events/{eventID}", eventController.DeleteEvent)

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/register/{userID}", registrationController.Register)
	mux.HandleFunc("DELETE /events/{eventID}/cancel/{userID}", registrationController.Cancel)
	mux.HandleFunc("GET /events/{eventID}/stats", registrationController.Stats)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
