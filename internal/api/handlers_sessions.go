package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/pomodoro"
)

// sessionIDParam parses the {id} route parameter as a session ID.
func sessionIDParam(r *http.Request) (id.SessionID, bool) {
	sid, err := id.ParseSessionID(chi.URLParam(r, "id"))
	return sid, err == nil
}

// StartSession handles POST /v1/sessions.
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID         string `json:"task_id"`
		PlannedMinutes int    `json:"planned_minutes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	taskID := id.Nil
	if req.TaskID != "" {
		parsed, err := id.ParseTaskID(req.TaskID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid task ID")
			return
		}
		taskID = parsed
	}

	sess, err := h.engine.StartSession(r.Context(), requestUserID(r), taskID, req.PlannedMinutes)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sess)
}

// ListSessions handles GET /v1/sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	opts := pomodoro.ListOpts{
		Status: pomodoro.Status(r.URL.Query().Get("status")),
		Since:  queryTime(r, "since"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	sessions, err := h.engine.ListSessions(r.Context(), requestUserID(r), opts)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// GetSession handles GET /v1/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	sess, err := h.engine.GetSession(r.Context(), requestUserID(r), sid)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

// CompleteSession handles POST /v1/sessions/{id}/complete.
func (h *Handler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	var req struct {
		FocusMinutes int `json:"focus_minutes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, balance, err := h.engine.CompleteSession(r.Context(), requestUserID(r), sid, req.FocusMinutes)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"session": sess, "balance": balance})
}

// AbandonSession handles POST /v1/sessions/{id}/abandon.
func (h *Handler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid session ID")
		return
	}

	var req struct {
		FocusMinutes int `json:"focus_minutes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, err := h.engine.AbandonSession(r.Context(), requestUserID(r), sid, req.FocusMinutes)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}
