package api

import (
	"net/http"

	"github.com/momentumhq/momentum/mood"
)

// MusicSuggestions handles GET /v1/music/suggestions.
func (h *Handler) MusicSuggestions(w http.ResponseWriter, r *http.Request) {
	if h.music == nil {
		respondError(w, http.StatusNotImplemented, "music proxy not configured")
		return
	}

	m := mood.Mood(r.URL.Query().Get("mood"))
	limit := queryInt(r, "limit")

	tracks, err := h.music.SuggestionsForMood(r.Context(), m, limit)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}
