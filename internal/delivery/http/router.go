package http

import (
	"log/slog"
	"net/http"

	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterDeps groups everything NewRouter wires into routes.
type RouterDeps struct {
	Logger            *slog.Logger
	TokenVerifier     domain.TokenVerifier
	AuthController    *controllers.AuthController
	EventController   *controllers.EventController
	BookingController *controllers.BookingController
	// UploadsDir is served read-only under /uploads/.
	UploadsDir string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(d.TokenVerifier, d.Logger)

	mux.HandleFunc("GET /health", Health)

	// Auth
	mux.HandleFunc("POST /api/auth/register", d.AuthController.Register)
	mux.HandleFunc("POST /api/auth/login", d.AuthController.Login)
	mux.HandleFunc("GET /api/auth/me", auth(d.AuthController.Me))

	// Events
	mux.HandleFunc("GET /api/events", d.EventController.ListEvents)
	mux.HandleFunc("GET /api/events/{id}", d.EventController.GetEvent)
	mux.HandleFunc("POST /api/events", auth(d.EventController.CreateEvent))
	mux.HandleFunc("DELETE /api/events/{id}", auth(d.EventController.DeleteEvent))

	// Bookings
	mux.HandleFunc("POST /api/bookings/book/{eventID}", auth(d.BookingController.Book))
	mux.HandleFunc("GET /api/bookings", auth(d.BookingController.List))
	mux.HandleFunc("DELETE /api/bookings/{id}", auth(d.BookingController.Cancel))

	// Admin
	mux.HandleFunc("GET /api/admin/ping", auth(controllers.Ping))

	// Uploaded images and QR tickets
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads", Uploads(d.UploadsDir)))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// Health godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse "data.status: ok"
// @Router /health [get]
func Health(w http.ResponseWriter, _ *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
