package app

import (
	"context"

	"inventory-service/internal/core"
)

// ApplicationService is the single interface transport adapters call.
// It decouples presentation from business logic: implementations hold
// no transport concerns and no display logic, and every business rule
// stays inside the core services it delegates to.
type ApplicationService interface {
	// CreateItem registers a new stock item.
	CreateItem(ctx context.Context, req CreateItemRequest) (*core.Item, error)

	// GetItem returns (nil, nil) when the item does not exist; the
	// adapter decides how absence maps to its transport.
	GetItem(ctx context.Context, id int64) (*core.Item, error)

	// ListItems returns items with optional warehouse/category filters.
	ListItems(ctx context.Context, req ListItemsRequest) (*ItemListResult, error)

	// UpdateItem applies a sparse field update to an item.
	UpdateItem(ctx context.Context, id int64, patch core.ItemPatch) (*core.Item, error)

	// ApplyTransaction records one stock movement atomically with the
	// resulting quantity change.
	ApplyTransaction(ctx context.Context, req ApplyTransactionRequest) (*core.Transaction, error)

	// ListItemTransactions returns an item's movement history, most
	// recent first.
	ListItemTransactions(ctx context.Context, itemID int64, skip, limit int) (*TransactionListResult, error)

	// ListLowStockItems returns items at or below their reorder point.
	ListLowStockItems(ctx context.Context) (*ItemListResult, error)

	// GetStockValue returns the per-currency valuation report.
	GetStockValue(ctx context.Context, warehouseID *int64) (*core.StockValue, error)

	// GetMetrics returns the inventory monitoring summary.
	GetMetrics(ctx context.Context) (*core.Metrics, error)

	// CreateWarehouse registers a new warehouse.
	CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*core.Warehouse, error)

	// GetWarehouse returns (nil, nil) when the warehouse does not exist.
	GetWarehouse(ctx context.Context, id int64) (*core.Warehouse, error)

	// ListWarehouses returns all warehouses, or only active ones.
	ListWarehouses(ctx context.Context, activeOnly bool) (*WarehouseListResult, error)

	// UpdateWarehouse applies a sparse field update to a warehouse.
	UpdateWarehouse(ctx context.Context, id int64, patch core.WarehousePatch) (*core.Warehouse, error)
}
