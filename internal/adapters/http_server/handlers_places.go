package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

func (h *Handlers) createPlace(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Please log in")
		return
	}

	var in app.PlaceInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.Places.Create(r.Context(), claims.UserID, in)
	if err != nil {
		fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) updatePlace(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Please log in")
		return
	}

	var in app.PlaceInput
	if !decode(w, r, &in) {
		return
	}
	if err := h.Places.Update(r.Context(), claims.UserID, in); err != nil {
		fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "ok")
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a number")
		return
	}
	p, err := h.Places.Get(r.Context(), id)
	if err != nil {
		fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) listPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.Places.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		fail(w, err)
		return
	}
	if places == nil {
		places = []domain.Place{}
	}
	respondJSON(w, http.StatusOK, places)
}

func (h *Handlers) userPlaces(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Please log in")
		return
	}
	places, err := h.Places.ByOwner(r.Context(), claims.UserID)
	if err != nil {
		fail(w, err)
		return
	}
	if places == nil {
		places = []domain.Place{}
	}
	respondJSON(w, http.StatusOK, places)
}
