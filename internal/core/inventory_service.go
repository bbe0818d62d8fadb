package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// InventoryService is the engine that owns every inventory business
// rule: quantity-update arithmetic, the non-negative stock invariant,
// reorder-point detection, and the valuation/low-stock reports. Its
// only dependency is the Store, injected at construction, so it can be
// run against the in-memory store in tests.
type InventoryService interface {
	// CreateItem persists a new item. Quantity defaults to zero when
	// the input leaves it unset. A duplicate SKU fails with
	// KindDuplicateKey and persists nothing.
	CreateItem(ctx context.Context, input ItemInput) (*Item, error)

	// GetItem is a pure lookup: (nil, nil) when the ID does not
	// resolve. The boundary decides whether absence becomes 404.
	GetItem(ctx context.Context, id int64) (*Item, error)

	// ListItems returns items with optional warehouse/category
	// filters combined with AND semantics. Pagination bounds are
	// trusted from the boundary.
	ListItems(ctx context.Context, f ItemFilter) ([]Item, error)

	// UpdateItem applies only the fields set in patch and bumps
	// updated_at. KindNotFound when the ID does not resolve,
	// KindConflict when the commit violates a store constraint.
	UpdateItem(ctx context.Context, id int64, patch ItemPatch) (*Item, error)

	// ApplyTransaction records one stock movement and the resulting
	// quantity atomically. receive adds the magnitude, issue
	// subtracts it and fails with KindInsufficientStock rather than
	// drive the quantity negative, adjust sets the absolute quantity.
	// Any other type fails with KindInvalidTransactionType. After a
	// successful commit a reorder signal is emitted when the new
	// quantity is at or below the item's reorder point.
	ApplyTransaction(ctx context.Context, input TransactionInput) (*Transaction, error)

	// ListItemTransactions returns the item's movement history,
	// most recent first.
	ListItemTransactions(ctx context.Context, itemID int64, skip, limit int) ([]Transaction, error)

	// ListLowStockItems returns every item with quantity at or below
	// its reorder point.
	ListLowStockItems(ctx context.Context) ([]Item, error)

	// GetStockValue computes sum(quantity * unit_price) per currency,
	// optionally scoped to one warehouse. TotalValue sums the per-
	// currency totals without conversion.
	GetStockValue(ctx context.Context, warehouseID *int64) (*StockValue, error)

	// GetMetrics returns the monitoring summary for the whole
	// inventory.
	GetMetrics(ctx context.Context) (*Metrics, error)
}

type inventoryService struct {
	store    Store
	notifier ReorderNotifier
}

// NewInventoryService constructs the engine. A nil notifier falls back
// to the log-based one.
func NewInventoryService(store Store, notifier ReorderNotifier) InventoryService {
	if notifier == nil {
		notifier = LogReorderNotifier{}
	}
	return &inventoryService{store: store, notifier: notifier}
}

func (s *inventoryService) CreateItem(ctx context.Context, input ItemInput) (*Item, error) {
	qty := decimal.Zero
	if input.Quantity != nil {
		qty = *input.Quantity
	}
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	item := &Item{
		SKU:             input.SKU,
		Name:            input.Name,
		Description:     input.Description,
		Category:        input.Category,
		Unit:            input.Unit,
		Quantity:        qty,
		ReorderPoint:    input.ReorderPoint,
		ReorderQuantity: input.ReorderQuantity,
		WarehouseID:     input.WarehouseID,
		Location:        input.Location,
		UnitPrice:       input.UnitPrice,
		Currency:        currency,
	}

	created, err := s.store.CreateItem(ctx, item)
	if err != nil {
		if KindOf(err) == KindDuplicateKey {
			return nil, WrapErr(KindDuplicateKey, err, "item with SKU %q already exists", input.SKU)
		}
		return nil, classifyStore("create item", err)
	}
	return created, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id int64) (*Item, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, classifyStore("get item", err)
	}
	return item, nil
}

func (s *inventoryService) ListItems(ctx context.Context, f ItemFilter) ([]Item, error) {
	items, err := s.store.ListItems(ctx, f)
	if err != nil {
		return nil, classifyStore("list items", err)
	}
	return items, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (*Item, error) {
	item, err := s.store.UpdateItem(ctx, id, patch)
	if err != nil {
		switch KindOf(err) {
		case KindNotFound:
			return nil, WrapErr(KindNotFound, err, "item %d not found", id)
		case KindDuplicateKey, KindConflict:
			return nil, WrapErr(KindConflict, err, "item update conflicts with existing state")
		}
		return nil, classifyStore("update item", err)
	}
	return item, nil
}

func (s *inventoryService) ApplyTransaction(ctx context.Context, input TransactionInput) (*Transaction, error) {
	// Strict three-way match. Rejecting up front keeps an unknown type
	// from ever reaching the adjust branch.
	if !input.Type.Valid() {
		return nil, Errf(KindInvalidTransactionType, "unknown transaction type %q", input.Type)
	}

	var afterCommit *Item

	created, err := s.store.ApplyTransaction(ctx, input.ItemID, func(item *Item) (decimal.Decimal, *Transaction, error) {
		var newQty decimal.Decimal
		switch input.Type {
		case TransactionReceive:
			newQty = item.Quantity.Add(input.Quantity)
		case TransactionIssue:
			newQty = item.Quantity.Sub(input.Quantity)
		case TransactionAdjust:
			newQty = input.Quantity
		}

		if newQty.IsNegative() {
			return decimal.Decimal{}, nil, Errf(KindInsufficientStock,
				"insufficient stock for item %s: have %s, requested %s %s",
				item.SKU, item.Quantity.String(), input.Type, input.Quantity.String())
		}

		snapshot := *item
		snapshot.Quantity = newQty
		afterCommit = &snapshot

		return newQty, &Transaction{
			ItemID:    item.ID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Reference: input.Reference,
			CreatedBy: input.CreatedBy,
			Notes:     input.Notes,
		}, nil
	})
	if err != nil {
		switch KindOf(err) {
		case KindNotFound:
			return nil, WrapErr(KindNotFound, err, "item %d not found", input.ItemID)
		case KindInsufficientStock:
			return nil, err
		}
		return nil, classifyStore("apply transaction", err)
	}

	// Post-commit, never blocking: the transaction already succeeded.
	if afterCommit != nil && afterCommit.Quantity.LessThanOrEqual(afterCommit.ReorderPoint) {
		s.notifier.ReorderPointReached(afterCommit)
	}

	return created, nil
}

func (s *inventoryService) ListItemTransactions(ctx context.Context, itemID int64, skip, limit int) ([]Transaction, error) {
	txs, err := s.store.ListItemTransactions(ctx, itemID, skip, limit)
	if err != nil {
		return nil, classifyStore("list transactions", err)
	}
	return txs, nil
}

func (s *inventoryService) ListLowStockItems(ctx context.Context) ([]Item, error) {
	items, err := s.store.ListLowStockItems(ctx)
	if err != nil {
		return nil, classifyStore("list low stock", err)
	}
	return items, nil
}

func (s *inventoryService) GetStockValue(ctx context.Context, warehouseID *int64) (*StockValue, error) {
	byCurrency, err := s.store.StockValueByCurrency(ctx, warehouseID)
	if err != nil {
		return nil, classifyStore("stock value", err)
	}

	total := decimal.Zero
	for _, v := range byCurrency {
		total = total.Add(v)
	}
	if byCurrency == nil {
		byCurrency = map[string]decimal.Decimal{}
	}
	return &StockValue{TotalValue: total, ByCurrency: byCurrency}, nil
}

func (s *inventoryService) GetMetrics(ctx context.Context) (*Metrics, error) {
	total, err := s.store.CountItems(ctx)
	if err != nil {
		return nil, classifyStore("count items", err)
	}
	low, err := s.store.ListLowStockItems(ctx)
	if err != nil {
		return nil, classifyStore("list low stock", err)
	}
	value, err := s.GetStockValue(ctx, nil)
	if err != nil {
		return nil, err
	}

	pct := decimal.Zero
	if total > 0 {
		pct = decimal.NewFromInt(int64(len(low))).
			Div(decimal.NewFromInt(total)).
			Mul(decimal.NewFromInt(100))
	}

	return &Metrics{
		TotalItems:         total,
		LowStockItems:      int64(len(low)),
		StockValue:         value,
		LowStockPercentage: pct,
	}, nil
}
