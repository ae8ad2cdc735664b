package api

import (
	"encoding/json"
	"errors"
	"net/http"

	momentum "github.com/momentumhq/momentum"
)

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError writes a JSON error body with the given status.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondEngineError maps engine errors onto HTTP statuses.
func respondEngineError(w http.ResponseWriter, err error) {
	var verr momentum.ValidationError

	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, momentum.ErrInvalidAmount),
		errors.Is(err, momentum.ErrUnknownMood),
		errors.Is(err, momentum.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, momentum.ErrInvalidCredentials),
		errors.Is(err, momentum.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, momentum.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, momentum.ErrInsufficientBalance):
		respondError(w, http.StatusPaymentRequired, err.Error())
	case momentum.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case momentum.IsConflict(err):
		respondError(w, http.StatusConflict, err.Error())
	case momentum.IsRetryable(err):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON parses the request body into v.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
