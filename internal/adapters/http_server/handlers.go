// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/internal/adapters/photofetch"
	redisad "stayhub/internal/adapters/redis"
	"stayhub/internal/app"
	"stayhub/internal/auth"
	"stayhub/internal/domain"
)

type Handlers struct {
	Accounts *app.AccountService
	Places   *app.PlaceService
	Bookings *app.BookingService
	Reviews  *app.ReviewService
	Tokens   *auth.Tokens
	Photos   *photofetch.Client

	AuthLimiter *redisad.FixedWindow
	UploadDir   string
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// auth endpoints share a fixed-window limiter per client address
	s.mux.Group(func(r chi.Router) {
		r.Use(RateLimit(h.AuthLimiter))
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	s.mux.Get("/profile", h.profile)
	s.mux.Post("/logout", h.logout)

	// public read paths
	s.mux.Get("/places", h.listPlaces)
	s.mux.Get("/places/{id}", h.getPlace)

	// protected routes
	s.mux.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.Tokens))
		r.Post("/places", h.createPlace)
		r.Put("/places", h.updatePlace)
		r.Get("/user-places", h.userPlaces)
		r.Post("/bookings", h.createBooking)
		r.Get("/bookings", h.listBookings)
		r.Delete("/bookings/{id}", h.cancelBooking)
		r.Post("/upload", h.upload)
		r.Post("/upload-by-link", h.uploadByLink)
	})

	// anonymous review CRUD, intentionally outside the auth group
	s.mux.Route("/api/reviews", func(r chi.Router) {
		r.Get("/{placeID}", h.listReviews)
		r.Post("/", h.createReview)
		r.Delete("/{id}", h.deleteReview)
	})

	// uploaded photos are served statically by generated filename
	s.mux.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.UploadDir))))
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, errorBody{Error: code, Message: msg})
}

// fail maps a service error onto the wire. Anything outside the taxonomy is a
// 500 with a generic body; the detail is logged, never exposed.
func fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
		writeError(w, status, "server_error", "Something went wrong")
		return
	}

	var de *domain.Error
	if errors.As(err, &de) {
		writeError(w, status, de.Code, de.Msg)
		return
	}
	writeError(w, status, "error", err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body must be valid JSON")
		return false
	}
	return true
}
