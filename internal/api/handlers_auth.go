package api

import (
	"net/http"
	"time"

	"github.com/momentumhq/momentum/user"
)

type tokenResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      *user.User `json:"user"`
}

// RegisterAccount handles POST /v1/auth/register.
func (h *Handler) RegisterAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	u, err := h.engine.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	token, expiry, err := h.auth.IssueToken(u.ID)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, tokenResponse{Token: token, ExpiresAt: expiry, User: u})
}

// Me handles GET /v1/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.engine.GetUser(r.Context(), requestUserID(r))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// Login handles POST /v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	u, err := h.engine.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	token, expiry, err := h.auth.IssueToken(u.ID)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expiry, User: u})
}
