package web

import (
	"net/http"
	"strconv"

	"inventory-service/internal/core"
)

// listLowStock handles GET /api/v1/inventory/low-stock. Returns every
// item at or below its reorder point, unpaginated.
func (h *Handler) listLowStock(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListLowStockItems(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Items == nil {
		result.Items = []core.Item{}
	}
	writeJSON(w, http.StatusOK, result.Items)
}

// stockValue handles GET /api/v1/inventory/stock-value.
func (h *Handler) stockValue(w http.ResponseWriter, r *http.Request) {
	var warehouseID *int64
	if v := r.URL.Query().Get("warehouse_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, r, "invalid warehouse_id", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		warehouseID = &id
	}

	value, err := h.svc.GetStockValue(r.Context(), warehouseID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, value)
}

// metrics handles GET /api/v1/inventory/metrics.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetMetrics(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
