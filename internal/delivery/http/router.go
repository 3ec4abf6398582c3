package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// RouterConfig holds everything NewRouter needs to wire the API.
type RouterConfig struct {
	Logger             *slog.Logger
	EventController    *controllers.EventController
	BookingController  *controllers.BookingController
	AuthController     *controllers.AuthController
	TokenVerifier      domain.TokenVerifier
	CORSAllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes, wrapped in CORS and
// request logging.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.TokenVerifier, cfg.Logger)

	// Auth
	mux.HandleFunc("POST /auth/login", cfg.AuthController.Login)

	// Events
	mux.HandleFunc("GET /events", cfg.EventController.ListEvents)
	mux.HandleFunc("POST /events", auth(cfg.EventController.CreateEvent))
	mux.HandleFunc("GET /events/{slug}", cfg.EventController.GetEventBySlug)
	mux.HandleFunc("GET /events/{slug}/calendar.ics", cfg.EventController.ExportCalendar)
	mux.HandleFunc("PATCH /events/{eventID}", auth(cfg.EventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(cfg.EventController.DeleteEvent))
	mux.HandleFunc("GET /events/{eventID}/bookings", auth(cfg.BookingController.ListEventBookings))

	// Bookings
	mux.HandleFunc("POST /bookings", cfg.BookingController.CreateBooking)
	mux.HandleFunc("GET /bookings/{bookingID}", auth(cfg.BookingController.GetBooking))
	mux.HandleFunc("PATCH /bookings/{bookingID}", auth(cfg.BookingController.UpdateBooking))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(cfg.Logger, mux))
}
