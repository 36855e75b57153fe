package httpserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"stayhub/internal/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	ID    int64  `json:"id"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}
	u, err := h.Accounts.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	u, err := h.Accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// wrong password is a 422 on this route, not a 401; existing clients
		// depend on it
		var de *domain.Error
		if errors.Is(err, domain.ErrUnauthorized) && errors.As(err, &de) {
			writeError(w, http.StatusUnprocessableEntity, de.Code, de.Msg)
			return
		}
		fail(w, err)
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		log.Error().Err(err).Msg("token issue failed")
		writeError(w, http.StatusInternalServerError, "token_error", "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, u)
}

// profile is soft-authenticated: no cookie means a null body, not an error.
func (h *Handlers) profile(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	claims, err := h.Tokens.Verify(c.Value)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, nil)
		return
	}

	u, err := h.Accounts.Profile(r.Context(), claims.UserID)
	if err != nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	respondJSON(w, http.StatusOK, profileResponse{Name: u.Name, Email: u.Email, ID: u.ID})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	respondJSON(w, http.StatusOK, true)
}
