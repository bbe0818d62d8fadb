package web

import (
	"net/http"

	"github.com/shopspring/decimal"

	"inventory-service/internal/app"
	"inventory-service/internal/core"
)

// createWarehouse handles POST /api/v1/warehouses.
func (h *Handler) createWarehouse(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code          string           `json:"code"`
		Name          string           `json:"name"`
		Address       string           `json:"address"`
		ContactPerson *string          `json:"contact_person"`
		ContactEmail  *string          `json:"contact_email"`
		ContactPhone  *string          `json:"contact_phone"`
		TotalCapacity *decimal.Decimal `json:"total_capacity"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if body.Code == "" {
		writeError(w, r, "code is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Address == "" {
		writeError(w, r, "address is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.TotalCapacity != nil && body.TotalCapacity.IsNegative() {
		writeError(w, r, "total_capacity must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	wh, err := h.svc.CreateWarehouse(r.Context(), app.CreateWarehouseRequest{
		Code:          body.Code,
		Name:          body.Name,
		Address:       body.Address,
		ContactPerson: body.ContactPerson,
		ContactEmail:  body.ContactEmail,
		ContactPhone:  body.ContactPhone,
		TotalCapacity: body.TotalCapacity,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, wh)
}

// listWarehouses handles GET /api/v1/warehouses. Pass active_only=true
// to restrict to active warehouses.
func (h *Handler) listWarehouses(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.svc.ListWarehouses(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Warehouses == nil {
		result.Warehouses = []core.Warehouse{}
	}
	writeJSON(w, http.StatusOK, result.Warehouses)
}

// getWarehouse handles GET /api/v1/warehouses/{id}.
func (h *Handler) getWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	wh, err := h.svc.GetWarehouse(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if wh == nil {
		writeError(w, r, "warehouse not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, wh)
}

// updateWarehouse handles PUT /api/v1/warehouses/{id}.
func (h *Handler) updateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var body struct {
		Name          *string          `json:"name"`
		Address       *string          `json:"address"`
		ContactPerson *string          `json:"contact_person"`
		ContactEmail  *string          `json:"contact_email"`
		ContactPhone  *string          `json:"contact_phone"`
		TotalCapacity *decimal.Decimal `json:"total_capacity"`
		UsedCapacity  *decimal.Decimal `json:"used_capacity"`
		IsActive      *bool            `json:"is_active"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if body.Name != nil && *body.Name == "" {
		writeError(w, r, "name must not be empty", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.TotalCapacity != nil && body.TotalCapacity.IsNegative() {
		writeError(w, r, "total_capacity must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.UsedCapacity != nil && body.UsedCapacity.IsNegative() {
		writeError(w, r, "used_capacity must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	wh, err := h.svc.UpdateWarehouse(r.Context(), id, core.WarehousePatch{
		Name:          body.Name,
		Address:       body.Address,
		ContactPerson: body.ContactPerson,
		ContactEmail:  body.ContactEmail,
		ContactPhone:  body.ContactPhone,
		TotalCapacity: body.TotalCapacity,
		UsedCapacity:  body.UsedCapacity,
		IsActive:      body.IsActive,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wh)
}
