package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/momentumhq/momentum/id"
	"github.com/momentumhq/momentum/task"
)

// taskIDParam parses the {id} route parameter as a task ID.
func taskIDParam(r *http.Request) (id.TaskID, bool) {
	tid, err := id.ParseTaskID(chi.URLParam(r, "id"))
	return tid, err == nil
}

// CreateTask handles POST /v1/tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title        string     `json:"title"`
		Notes        string     `json:"notes"`
		RewardPoints int64      `json:"reward_points"`
		DueAt        *time.Time `json:"due_at"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	t, err := h.engine.CreateTask(r.Context(), requestUserID(r), req.Title, req.Notes, req.RewardPoints, req.DueAt)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// ListTasks handles GET /v1/tasks.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	opts := task.ListOpts{
		Status: task.Status(r.URL.Query().Get("status")),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	tasks, err := h.engine.ListTasks(r.Context(), requestUserID(r), opts)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

// GetTask handles GET /v1/tasks/{id}.
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	tid, ok := taskIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	t, err := h.engine.GetTask(r.Context(), requestUserID(r), tid)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// UpdateTask handles PATCH /v1/tasks/{id}.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	tid, ok := taskIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	var patch task.Patch
	if err := decodeJSON(r, &patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	t, err := h.engine.UpdateTask(r.Context(), requestUserID(r), tid, patch)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// DeleteTask handles DELETE /v1/tasks/{id}.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	tid, ok := taskIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	if err := h.engine.DeleteTask(r.Context(), requestUserID(r), tid); err != nil {
		respondEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteTask handles POST /v1/tasks/{id}/complete.
func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	tid, ok := taskIDParam(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid task ID")
		return
	}

	t, balance, err := h.engine.CompleteTask(r.Context(), requestUserID(r), tid)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"task": t, "balance": balance})
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed.
func queryInt(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	if n < 0 {
		return 0
	}
	return n
}

// queryTime parses an RFC 3339 query parameter, returning the zero time
// when absent or malformed.
func queryTime(r *http.Request, name string) time.Time {
	t, _ := time.Parse(time.RFC3339, r.URL.Query().Get(name))
	return t
}
