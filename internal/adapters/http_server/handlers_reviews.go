package httpserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stayhub/internal/domain"
)

type createReviewRequest struct {
	PlaceID string `json:"placeId"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ForPlace(r.Context(), chi.URLParam(r, "placeID"))
	if err != nil {
		fail(w, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if !decode(w, r, &req) {
		return
	}
	rv, err := h.Reviews.Create(r.Context(), req.PlaceID, req.Rating, req.Text)
	if err != nil {
		fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rv)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a number")
		return
	}
	if err := h.Reviews.Delete(r.Context(), id); err != nil {
		fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
