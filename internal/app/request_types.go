package app

import (
	"github.com/shopspring/decimal"

	"inventory-service/internal/core"
)

// CreateItemRequest carries an already shape-validated item creation.
type CreateItemRequest struct {
	SKU             string
	Name            string
	Description     *string
	Category        core.ItemCategory
	Unit            core.UnitOfMeasure
	Quantity        *decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
	WarehouseID     int64
	Location        *string
	UnitPrice       *decimal.Decimal
	Currency        string
}

// ListItemsRequest carries validated pagination and optional filters.
type ListItemsRequest struct {
	Skip        int
	Limit       int
	WarehouseID *int64
	Category    *core.ItemCategory
}

// ApplyTransactionRequest carries one validated stock movement.
type ApplyTransactionRequest struct {
	ItemID    int64
	Type      core.TransactionType
	Quantity  decimal.Decimal
	Reference *string
	CreatedBy string
	Notes     *string
}

// CreateWarehouseRequest carries a validated warehouse creation.
type CreateWarehouseRequest struct {
	Code          string
	Name          string
	Address       string
	ContactPerson *string
	ContactEmail  *string
	ContactPhone  *string
	TotalCapacity *decimal.Decimal
}
