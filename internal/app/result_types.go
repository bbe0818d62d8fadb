package app

import "inventory-service/internal/core"

// ItemListResult is returned by ListItems and ListLowStockItems.
type ItemListResult struct {
	Items []core.Item
}

// TransactionListResult is returned by ListItemTransactions.
type TransactionListResult struct {
	Transactions []core.Transaction
	ItemID       int64
}

// WarehouseListResult is returned by ListWarehouses.
type WarehouseListResult struct {
	Warehouses []core.Warehouse
}
