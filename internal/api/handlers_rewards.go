package api

import (
	"net/http"

	"github.com/momentumhq/momentum/reward"
)

// Balance handles GET /v1/rewards/balance.
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.engine.Balance(r.Context(), requestUserID(r))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"balance": balance})
}

// Profile handles GET /v1/rewards/profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.engine.Profile(r.Context(), requestUserID(r))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Catalog handles GET /v1/rewards/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"items": h.engine.Catalog().Items()})
}

// Purchase handles POST /v1/rewards/purchase.
func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Item string `json:"item"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	receipt, err := h.engine.Purchase(r.Context(), requestUserID(r), req.Item)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, receipt)
}

// PurchaseHistory handles GET /v1/rewards/history.
func (h *Handler) PurchaseHistory(w http.ResponseWriter, r *http.Request) {
	opts := reward.ListOpts{
		Since:  queryTime(r, "since"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	purchases, err := h.engine.PurchaseHistory(r.Context(), requestUserID(r), opts)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"purchases": purchases})
}

// Summary handles GET /v1/analytics/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.Summary(r.Context(), requestUserID(r), queryTime(r, "from"), queryTime(r, "to"))
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
