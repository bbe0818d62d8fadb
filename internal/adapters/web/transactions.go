package web

import (
	"net/http"

	"github.com/shopspring/decimal"

	"inventory-service/internal/app"
	"inventory-service/internal/core"
)

// createTransaction handles POST /api/v1/inventory/transactions.
// Body: { item_id, transaction_type, quantity, reference?, created_by, notes? }
func (h *Handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemID          int64           `json:"item_id"`
		TransactionType string          `json:"transaction_type"`
		Quantity        decimal.Decimal `json:"quantity"`
		Reference       *string         `json:"reference"`
		CreatedBy       string          `json:"created_by"`
		Notes           *string         `json:"notes"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if body.ItemID <= 0 {
		writeError(w, r, "item_id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.TransactionType == "" {
		writeError(w, r, "transaction_type is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if body.CreatedBy == "" {
		writeError(w, r, "created_by is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	// receive/issue quantities are magnitudes; adjust may carry any
	// value and the engine rejects a negative target itself.
	txType := core.TransactionType(body.TransactionType)
	if (txType == core.TransactionReceive || txType == core.TransactionIssue) && body.Quantity.IsNegative() {
		writeError(w, r, "quantity must be >= 0", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.ApplyTransaction(r.Context(), app.ApplyTransactionRequest{
		ItemID:    body.ItemID,
		Type:      txType,
		Quantity:  body.Quantity,
		Reference: body.Reference,
		CreatedBy: body.CreatedBy,
		Notes:     body.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// listItemTransactions handles GET /api/v1/inventory/items/{id}/transactions.
func (h *Handler) listItemTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	skip, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	result, err := h.svc.ListItemTransactions(r.Context(), id, skip, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if result.Transactions == nil {
		result.Transactions = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, result.Transactions)
}
