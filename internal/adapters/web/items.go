package web

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"inventory-service/internal/app"
	"inventory-service/internal/core"
)

// createItem handles POST /api/v1/inventory/items.
func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SKU             string           `json:"sku"`
		Name            string           `json:"name"`
		Description     *string          `json:"description"`
		Category        string           `json:"category"`
		Unit            string           `json:"unit"`
		Quantity        *decimal.Decimal `json:"quantity"`
		ReorderPoint    decimal.Decimal  `json:"reorder_point"`
		ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
		WarehouseID     int64            `json:"warehouse_id"`
		Location        *string          `json:"location"`
		UnitPrice       *decimal.Decimal `json:"unit_price"`
		Currency        string           `json:"currency"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if body.SKU == "" {
		writeError(w, r, "sku is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		writeError(w, r, "name is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	category := core.ItemCategory(body.Category)
	if !category.Valid() {
		writeError(w, r, "invalid category", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	unit := core.UnitOfMeasure(body.Unit)
	if !unit.Valid() {
		writeError(w, r, "invalid unit", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.WarehouseID <= 0 {
		writeError(w, r, "warehouse_id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Quantity != nil && body.Quantity.IsNegative() {
		writeError(w, r, "quantity must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.ReorderPoint.IsNegative() || body.ReorderQuantity.IsNegative() {
		writeError(w, r, "reorder_point and reorder_quantity must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.UnitPrice != nil && body.UnitPrice.IsNegative() {
		writeError(w, r, "unit_price must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	item, err := h.svc.CreateItem(r.Context(), app.CreateItemRequest{
		SKU:             body.SKU,
		Name:            body.Name,
		Description:     body.Description,
		Category:        category,
		Unit:            unit,
		Quantity:        body.Quantity,
		ReorderPoint:    body.ReorderPoint,
		ReorderQuantity: body.ReorderQuantity,
		WarehouseID:     body.WarehouseID,
		Location:        body.Location,
		UnitPrice:       body.UnitPrice,
		Currency:        body.Currency,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// listItems handles GET /api/v1/inventory/items.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	req := app.ListItemsRequest{Skip: skip, Limit: limit}

	if v := r.URL.Query().Get("warehouse_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, r, "invalid warehouse_id", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		req.WarehouseID = &id
	}
	if v := r.URL.Query().Get("category"); v != "" {
		category := core.ItemCategory(v)
		if !category.Valid() {
			writeError(w, r, "invalid category", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		req.Category = &category
	}

	result, err := h.svc.ListItems(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Items == nil {
		result.Items = []core.Item{}
	}
	writeJSON(w, http.StatusOK, result.Items)
}

// getItem handles GET /api/v1/inventory/items/{id}.
func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	item, err := h.svc.GetItem(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if item == nil {
		writeError(w, r, "item not found", "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// updateItem handles PUT /api/v1/inventory/items/{id}. Absent fields
// are left untouched.
func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var body struct {
		Name            *string          `json:"name"`
		Description     *string          `json:"description"`
		Category        *string          `json:"category"`
		Unit            *string          `json:"unit"`
		ReorderPoint    *decimal.Decimal `json:"reorder_point"`
		ReorderQuantity *decimal.Decimal `json:"reorder_quantity"`
		WarehouseID     *int64           `json:"warehouse_id"`
		Location        *string          `json:"location"`
		UnitPrice       *decimal.Decimal `json:"unit_price"`
		Currency        *string          `json:"currency"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	patch := core.ItemPatch{
		Name:            body.Name,
		Description:     body.Description,
		ReorderPoint:    body.ReorderPoint,
		ReorderQuantity: body.ReorderQuantity,
		WarehouseID:     body.WarehouseID,
		Location:        body.Location,
		UnitPrice:       body.UnitPrice,
		Currency:        body.Currency,
	}

	if body.Name != nil && *body.Name == "" {
		writeError(w, r, "name must not be empty", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.Category != nil {
		category := core.ItemCategory(*body.Category)
		if !category.Valid() {
			writeError(w, r, "invalid category", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		patch.Category = &category
	}
	if body.Unit != nil {
		unit := core.UnitOfMeasure(*body.Unit)
		if !unit.Valid() {
			writeError(w, r, "invalid unit", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		patch.Unit = &unit
	}
	if body.WarehouseID != nil && *body.WarehouseID <= 0 {
		writeError(w, r, "invalid warehouse_id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.ReorderPoint != nil && body.ReorderPoint.IsNegative() {
		writeError(w, r, "reorder_point must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.ReorderQuantity != nil && body.ReorderQuantity.IsNegative() {
		writeError(w, r, "reorder_quantity must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.UnitPrice != nil && body.UnitPrice.IsNegative() {
		writeError(w, r, "unit_price must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	item, err := h.svc.UpdateItem(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
