package app

import (
	"context"

	"inventory-service/internal/core"
)

type appService struct {
	inventory  core.InventoryService
	warehouses core.WarehouseService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(inventory core.InventoryService, warehouses core.WarehouseService) ApplicationService {
	return &appService{inventory: inventory, warehouses: warehouses}
}

func (s *appService) CreateItem(ctx context.Context, req CreateItemRequest) (*core.Item, error) {
	return s.inventory.CreateItem(ctx, core.ItemInput{
		SKU:             req.SKU,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Unit:            req.Unit,
		Quantity:        req.Quantity,
		ReorderPoint:    req.ReorderPoint,
		ReorderQuantity: req.ReorderQuantity,
		WarehouseID:     req.WarehouseID,
		Location:        req.Location,
		UnitPrice:       req.UnitPrice,
		Currency:        req.Currency,
	})
}

func (s *appService) GetItem(ctx context.Context, id int64) (*core.Item, error) {
	return s.inventory.GetItem(ctx, id)
}

func (s *appService) ListItems(ctx context.Context, req ListItemsRequest) (*ItemListResult, error) {
	items, err := s.inventory.ListItems(ctx, core.ItemFilter{
		WarehouseID: req.WarehouseID,
		Category:    req.Category,
		Skip:        req.Skip,
		Limit:       req.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

func (s *appService) UpdateItem(ctx context.Context, id int64, patch core.ItemPatch) (*core.Item, error) {
	return s.inventory.UpdateItem(ctx, id, patch)
}

func (s *appService) ApplyTransaction(ctx context.Context, req ApplyTransactionRequest) (*core.Transaction, error) {
	return s.inventory.ApplyTransaction(ctx, core.TransactionInput{
		ItemID:    req.ItemID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Reference: req.Reference,
		CreatedBy: req.CreatedBy,
		Notes:     req.Notes,
	})
}

func (s *appService) ListItemTransactions(ctx context.Context, itemID int64, skip, limit int) (*TransactionListResult, error) {
	txs, err := s.inventory.ListItemTransactions(ctx, itemID, skip, limit)
	if err != nil {
		return nil, err
	}
	return &TransactionListResult{Transactions: txs, ItemID: itemID}, nil
}

func (s *appService) ListLowStockItems(ctx context.Context) (*ItemListResult, error) {
	items, err := s.inventory.ListLowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

func (s *appService) GetStockValue(ctx context.Context, warehouseID *int64) (*core.StockValue, error) {
	return s.inventory.GetStockValue(ctx, warehouseID)
}

func (s *appService) GetMetrics(ctx context.Context) (*core.Metrics, error) {
	return s.inventory.GetMetrics(ctx)
}

func (s *appService) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*core.Warehouse, error) {
	return s.warehouses.CreateWarehouse(ctx, core.WarehouseInput{
		Code:          req.Code,
		Name:          req.Name,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		TotalCapacity: req.TotalCapacity,
	})
}

func (s *appService) GetWarehouse(ctx context.Context, id int64) (*core.Warehouse, error) {
	return s.warehouses.GetWarehouse(ctx, id)
}

func (s *appService) ListWarehouses(ctx context.Context, activeOnly bool) (*WarehouseListResult, error) {
	ws, err := s.warehouses.ListWarehouses(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return &WarehouseListResult{Warehouses: ws}, nil
}

func (s *appService) UpdateWarehouse(ctx context.Context, id int64, patch core.WarehousePatch) (*core.Warehouse, error) {
	return s.warehouses.UpdateWarehouse(ctx, id, patch)
}
