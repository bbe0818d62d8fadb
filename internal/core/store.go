package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ItemFilter narrows ListItems. Nil filters are ignored; when both are
// set they combine with AND semantics. Skip/Limit are trusted as
// already-validated pagination bounds.
type ItemFilter struct {
	WarehouseID *int64
	Category    *ItemCategory
	Skip        int
	Limit       int
}

// ApplyFn runs against the target item while the store holds it under
// an exclusive per-item guard. It returns the new quantity and the
// transaction to append; returning an error aborts the unit with no
// writes. The store must not call fn concurrently for the same item.
type ApplyFn func(item *Item) (newQty decimal.Decimal, tx *Transaction, err error)

// Store is the transactional persistence collaborator. It holds no
// business rules: implementations persist what they are given and
// translate driver failures into classified *Error values
// (KindDuplicateKey for uniqueness violations, KindNotFound for an
// absent item inside ApplyTransaction).
type Store interface {
	// CreateItem persists a new item and returns it with the
	// store-assigned ID and timestamps.
	CreateItem(ctx context.Context, item *Item) (*Item, error)

	// GetItem returns (nil, nil) when no item with that ID exists.
	GetItem(ctx context.Context, id int64) (*Item, error)

	// ListItems returns items matching the filter, ordered by ID
	// ascending.
	ListItems(ctx context.Context, f ItemFilter) ([]Item, error)

	// UpdateItem overwrites only the fields set in patch and bumps
	// updated_at. Returns KindNotFound when the ID does not resolve
	// and KindConflict when the commit violates a store constraint.
	UpdateItem(ctx context.Context, id int64, patch ItemPatch) (*Item, error)

	// ApplyTransaction is the single atomic unit of work: it resolves
	// the item, runs fn under a per-item exclusive guard, then commits
	// the returned transaction record (assigning ID and timestamp) and
	// the item's new quantity together — both land or neither does.
	ApplyTransaction(ctx context.Context, itemID int64, fn ApplyFn) (*Transaction, error)

	// ListItemTransactions returns the item's movements ordered by
	// timestamp descending, most recent first.
	ListItemTransactions(ctx context.Context, itemID int64, skip, limit int) ([]Transaction, error)

	// ListLowStockItems returns every item with quantity <=
	// reorder_point, ordered by SKU. No pagination.
	ListLowStockItems(ctx context.Context) ([]Item, error)

	// StockValueByCurrency returns sum(quantity * unit_price) grouped
	// by currency, optionally filtered to one warehouse. Items with a
	// NULL unit price are excluded.
	StockValueByCurrency(ctx context.Context, warehouseID *int64) (map[string]decimal.Decimal, error)

	// CountItems returns the total number of items.
	CountItems(ctx context.Context) (int64, error)

	// CreateWarehouse persists a new warehouse; duplicate codes fail
	// with KindDuplicateKey.
	CreateWarehouse(ctx context.Context, w *Warehouse) (*Warehouse, error)

	// GetWarehouse returns (nil, nil) when no warehouse with that ID
	// exists.
	GetWarehouse(ctx context.Context, id int64) (*Warehouse, error)

	// ListWarehouses returns warehouses ordered by code; activeOnly
	// restricts to is_active = true.
	ListWarehouses(ctx context.Context, activeOnly bool) ([]Warehouse, error)

	// UpdateWarehouse overwrites only the fields set in patch.
	UpdateWarehouse(ctx context.Context, id int64, patch WarehousePatch) (*Warehouse, error)
}
