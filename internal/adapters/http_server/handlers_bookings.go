package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Please log in")
		return
	}

	var in app.BookingInput
	if !decode(w, r, &in) {
		return
	}
	b, err := h.Bookings.Create(r.Context(), claims.UserID, in)
	if err != nil {
		fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Please log in")
		return
	}
	bookings, err := h.Bookings.ForUser(r.Context(), claims.UserID)
	if err != nil {
		fail(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.BookingWithPlace{}
	}
	respondJSON(w, http.StatusOK, bookings)
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Please log in")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a number")
		return
	}
	if err := h.Bookings.Cancel(r.Context(), claims.UserID, id); err != nil {
		fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
