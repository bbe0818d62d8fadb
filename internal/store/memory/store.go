// Package memory provides an in-process implementation of core.Store.
// It backs the engine's unit tests and is handy for local development
// without a database. All operations are guarded by a single mutex, so
// the apply-transaction read-modify-write is serialized per store,
// which is stricter than the per-item guarantee the contract asks for.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"inventory-service/internal/core"
)

type Store struct {
	mu sync.Mutex

	items        map[int64]*core.Item
	skus         map[string]int64
	transactions map[int64]*core.Transaction
	warehouses   map[int64]*core.Warehouse
	whCodes      map[string]int64

	nextItemID int64
	nextTxID   int64
	nextWhID   int64

	// lastTS makes server-assigned timestamps strictly monotonic even
	// when the wall clock does not advance between calls.
	lastTS time.Time
}

var _ core.Store = (*Store)(nil)

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		items:        make(map[int64]*core.Item),
		skus:         make(map[string]int64),
		transactions: make(map[int64]*core.Transaction),
		warehouses:   make(map[int64]*core.Warehouse),
		whCodes:      make(map[string]int64),
	}
}

func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.lastTS) {
		t = s.lastTS.Add(time.Microsecond)
	}
	s.lastTS = t
	return t
}

// ── Items ────────────────────────────────────────────────────────────

func (s *Store) CreateItem(ctx context.Context, item *core.Item) (*core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.skus[item.SKU]; exists {
		return nil, core.Errf(core.KindDuplicateKey, "sku %q taken", item.SKU)
	}

	s.nextItemID++
	now := s.now()

	stored := *item
	stored.ID = s.nextItemID
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.items[stored.ID] = &stored
	s.skus[stored.SKU] = stored.ID

	out := stored
	return &out, nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	out := *item
	return &out, nil
}

func (s *Store) ListItems(ctx context.Context, f core.ItemFilter) ([]core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []core.Item
	for _, item := range s.items {
		if f.WarehouseID != nil && item.WarehouseID != *f.WarehouseID {
			continue
		}
		if f.Category != nil && item.Category != *f.Category {
			continue
		}
		matched = append(matched, *item)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	return paginate(matched, f.Skip, f.Limit), nil
}

func (s *Store) UpdateItem(ctx context.Context, id int64, patch core.ItemPatch) (*core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, core.Errf(core.KindNotFound, "item %d not found", id)
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = patch.Description
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.ReorderPoint != nil {
		item.ReorderPoint = *patch.ReorderPoint
	}
	if patch.ReorderQuantity != nil {
		item.ReorderQuantity = *patch.ReorderQuantity
	}
	if patch.WarehouseID != nil {
		item.WarehouseID = *patch.WarehouseID
	}
	if patch.Location != nil {
		item.Location = patch.Location
	}
	if patch.UnitPrice != nil {
		item.UnitPrice = patch.UnitPrice
	}
	if patch.Currency != nil {
		item.Currency = *patch.Currency
	}
	item.UpdatedAt = s.now()

	out := *item
	return &out, nil
}

func (s *Store) ApplyTransaction(ctx context.Context, itemID int64, fn core.ApplyFn) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok {
		return nil, core.Errf(core.KindNotFound, "item %d not found", itemID)
	}

	// fn sees a copy: a failing call must leave the stored item and
	// the transaction log completely untouched.
	view := *item
	newQty, tx, err := fn(&view)
	if err != nil {
		return nil, err
	}

	s.nextTxID++
	now := s.now()

	stored := *tx
	stored.ID = s.nextTxID
	stored.ItemID = itemID
	stored.Timestamp = now
	s.transactions[stored.ID] = &stored

	item.Quantity = newQty
	item.UpdatedAt = now

	out := stored
	return &out, nil
}

func (s *Store) ListItemTransactions(ctx context.Context, itemID int64, skip, limit int) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []core.Transaction
	for _, tx := range s.transactions {
		if tx.ItemID == itemID {
			matched = append(matched, *tx)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ID > matched[j].ID
	})

	return paginate(matched, skip, limit), nil
}

func (s *Store) ListLowStockItems(ctx context.Context) ([]core.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []core.Item
	for _, item := range s.items {
		if item.Quantity.LessThanOrEqual(item.ReorderPoint) {
			matched = append(matched, *item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].SKU < matched[j].SKU })
	return matched, nil
}

func (s *Store) StockValueByCurrency(ctx context.Context, warehouseID *int64) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := make(map[string]decimal.Decimal)
	for _, item := range s.items {
		if warehouseID != nil && item.WarehouseID != *warehouseID {
			continue
		}
		if item.UnitPrice == nil {
			continue
		}
		totals[item.Currency] = totals[item.Currency].Add(item.Quantity.Mul(*item.UnitPrice))
	}
	return totals, nil
}

func (s *Store) CountItems(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.items)), nil
}

// ── Warehouses ───────────────────────────────────────────────────────

func (s *Store) CreateWarehouse(ctx context.Context, w *core.Warehouse) (*core.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.whCodes[w.Code]; exists {
		return nil, core.Errf(core.KindDuplicateKey, "warehouse code %q taken", w.Code)
	}

	s.nextWhID++
	now := s.now()

	stored := *w
	stored.ID = s.nextWhID
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.warehouses[stored.ID] = &stored
	s.whCodes[stored.Code] = stored.ID

	out := stored
	return &out, nil
}

func (s *Store) GetWarehouse(ctx context.Context, id int64) (*core.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.warehouses[id]
	if !ok {
		return nil, nil
	}
	out := *w
	return &out, nil
}

func (s *Store) ListWarehouses(ctx context.Context, activeOnly bool) ([]core.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []core.Warehouse
	for _, w := range s.warehouses {
		if activeOnly && !w.IsActive {
			continue
		}
		matched = append(matched, *w)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Code < matched[j].Code })
	return matched, nil
}

func (s *Store) UpdateWarehouse(ctx context.Context, id int64, patch core.WarehousePatch) (*core.Warehouse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.warehouses[id]
	if !ok {
		return nil, core.Errf(core.KindNotFound, "warehouse %d not found", id)
	}

	if patch.Name != nil {
		w.Name = *patch.Name
	}
	if patch.Address != nil {
		w.Address = *patch.Address
	}
	if patch.ContactPerson != nil {
		w.ContactPerson = patch.ContactPerson
	}
	if patch.ContactEmail != nil {
		w.ContactEmail = patch.ContactEmail
	}
	if patch.ContactPhone != nil {
		w.ContactPhone = patch.ContactPhone
	}
	if patch.TotalCapacity != nil {
		w.TotalCapacity = patch.TotalCapacity
	}
	if patch.UsedCapacity != nil {
		w.UsedCapacity = *patch.UsedCapacity
	}
	if patch.IsActive != nil {
		w.IsActive = *patch.IsActive
	}
	w.UpdatedAt = s.now()

	out := *w
	return &out, nil
}

func paginate[T any](in []T, skip, limit int) []T {
	if skip >= len(in) {
		return nil
	}
	in = in[skip:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
