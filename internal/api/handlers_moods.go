package api

import (
	"net/http"

	"github.com/momentumhq/momentum/mood"
)

// LogMood handles POST /v1/moods.
func (h *Handler) LogMood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood string `json:"mood"`
		Note string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	entry, err := h.engine.LogMood(r.Context(), requestUserID(r), mood.Mood(req.Mood), req.Note)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

// ListMoods handles GET /v1/moods.
func (h *Handler) ListMoods(w http.ResponseWriter, r *http.Request) {
	opts := mood.ListOpts{
		Since:  queryTime(r, "since"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	entries, err := h.engine.ListMoods(r.Context(), requestUserID(r), opts)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"moods": entries})
}
