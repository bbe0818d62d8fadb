package core_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"inventory-service/internal/core"
	"inventory-service/internal/store/memory"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}

func newEngine(notifier core.ReorderNotifier) core.InventoryService {
	return core.NewInventoryService(memory.NewStore(), notifier)
}

func mustCreateItem(t *testing.T, svc core.InventoryService, input core.ItemInput) *core.Item {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), input)
	if err != nil {
		t.Fatalf("CreateItem(%s): %v", input.SKU, err)
	}
	return item
}

func mustApply(t *testing.T, svc core.InventoryService, input core.TransactionInput) *core.Transaction {
	t.Helper()
	tx, err := svc.ApplyTransaction(context.Background(), input)
	if err != nil {
		t.Fatalf("ApplyTransaction(%s %s): %v", input.Type, input.Quantity, err)
	}
	return tx
}

func itemQuantity(t *testing.T, svc core.InventoryService, id int64) decimal.Decimal {
	t.Helper()
	item, err := svc.GetItem(context.Background(), id)
	if err != nil {
		t.Fatalf("GetItem(%d): %v", id, err)
	}
	if item == nil {
		t.Fatalf("GetItem(%d): item gone", id)
	}
	return item.Quantity
}

func baseItem(sku string, qty *decimal.Decimal) core.ItemInput {
	return core.ItemInput{
		SKU:          sku,
		Name:         "Test " + sku,
		Category:     core.CategoryRawMaterial,
		Unit:         core.UnitPiece,
		Quantity:     qty,
		WarehouseID:  1,
		ReorderPoint: decimal.Zero,
	}
}

func TestCreateItemDefaults(t *testing.T) {
	svc := newEngine(nil)

	item := mustCreateItem(t, svc, baseItem("SKU-DEF", nil))

	if !item.Quantity.IsZero() {
		t.Errorf("quantity = %s, want 0", item.Quantity)
	}
	if item.Currency != "USD" {
		t.Errorf("currency = %q, want USD", item.Currency)
	}
	if item.ID == 0 {
		t.Error("ID not assigned")
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Error("timestamps not assigned")
	}
}

func TestCreateItemDuplicateSKU(t *testing.T) {
	svc := newEngine(nil)

	mustCreateItem(t, svc, baseItem("SKU-DUP", nil))

	_, err := svc.CreateItem(context.Background(), baseItem("SKU-DUP", nil))
	if core.KindOf(err) != core.KindDuplicateKey {
		t.Fatalf("duplicate SKU: got %v, want kind %s", err, core.KindDuplicateKey)
	}

	items, err := svc.ListItems(context.Background(), core.ItemFilter{Limit: 100})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("after duplicate create: %d items, want 1", len(items))
	}
}

func TestGetItemAbsent(t *testing.T) {
	svc := newEngine(nil)

	item, err := svc.GetItem(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("got %+v, want nil for absent item", item)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	svc := newEngine(nil)

	name := "renamed"
	_, err := svc.UpdateItem(context.Background(), 42, core.ItemPatch{Name: &name})
	if core.KindOf(err) != core.KindNotFound {
		t.Fatalf("got %v, want kind %s", err, core.KindNotFound)
	}
}

func TestUpdateItemAppliesOnlySetFields(t *testing.T) {
	svc := newEngine(nil)

	item := mustCreateItem(t, svc, baseItem("SKU-PATCH", decPtr(t, "3")))

	name := "patched name"
	rp := dec(t, "2")
	updated, err := svc.UpdateItem(context.Background(), item.ID, core.ItemPatch{
		Name:         &name,
		ReorderPoint: &rp,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if updated.Name != "patched name" {
		t.Errorf("name = %q", updated.Name)
	}
	if !updated.ReorderPoint.Equal(rp) {
		t.Errorf("reorder_point = %s, want 2", updated.ReorderPoint)
	}
	if updated.SKU != "SKU-PATCH" {
		t.Errorf("sku changed to %q", updated.SKU)
	}
	if !updated.Quantity.Equal(dec(t, "3")) {
		t.Errorf("quantity changed to %s", updated.Quantity)
	}
	if !updated.UpdatedAt.After(item.UpdatedAt) {
		t.Error("updated_at not bumped")
	}
}

func TestApplyTransactionSequence(t *testing.T) {
	svc := newEngine(nil)

	item := mustCreateItem(t, svc, baseItem("SKU-SEQ", nil))

	steps := []struct {
		typ  core.TransactionType
		qty  string
		want string
	}{
		{core.TransactionReceive, "10", "10"},
		{core.TransactionIssue, "3", "7"},
		{core.TransactionReceive, "2.5", "9.5"},
		{core.TransactionAdjust, "7", "7"},
		{core.TransactionIssue, "7", "0"},
	}
	for _, step := range steps {
		mustApply(t, svc, core.TransactionInput{
			ItemID:    item.ID,
			Type:      step.typ,
			Quantity:  dec(t, step.qty),
			CreatedBy: "tester",
		})
		if got := itemQuantity(t, svc, item.ID); !got.Equal(dec(t, step.want)) {
			t.Fatalf("after %s %s: quantity = %s, want %s", step.typ, step.qty, got, step.want)
		}
	}

	txs, err := svc.ListItemTransactions(context.Background(), item.ID, 0, 100)
	if err != nil {
		t.Fatalf("ListItemTransactions: %v", err)
	}
	if len(txs) != len(steps) {
		t.Fatalf("%d transactions recorded, want %d", len(txs), len(steps))
	}
}

func TestIssueInsufficientStockRollsBack(t *testing.T) {
	svc := newEngine(nil)

	item := mustCreateItem(t, svc, baseItem("SKU-SHORT", decPtr(t, "10")))
	mustApply(t, svc, core.TransactionInput{
		ItemID: item.ID, Type: core.TransactionReceive, Quantity: dec(t, "0"), CreatedBy: "tester",
	})

	_, err := svc.ApplyTransaction(context.Background(), core.TransactionInput{
		ItemID:    item.ID,
		Type:      core.TransactionIssue,
		Quantity:  dec(t, "15"),
		CreatedBy: "tester",
	})
	if core.KindOf(err) != core.KindInsufficientStock {
		t.Fatalf("got %v, want kind %s", err, core.KindInsufficientStock)
	}

	if got := itemQuantity(t, svc, item.ID); !got.Equal(dec(t, "10")) {
		t.Errorf("quantity = %s after failed issue, want 10", got)
	}
	txs, err := svc.ListItemTransactions(context.Background(), item.ID, 0, 100)
	if err != nil {
		t.Fatalf("ListItemTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Errorf("%d transactions after failed issue, want 1", len(txs))
	}
}

func TestAdjustToNegativeRejected(t *testing.T) {
	svc := newEngine(nil)

	item := mustCreateItem(t, svc, baseItem("SKU-NEG", decPtr(t, "5")))

	_, err := svc.ApplyTransaction(context.Background(), core.TransactionInput{
		ItemID:    item.ID,
		Type:      core.TransactionAdjust,
		Quantity:  dec(t, "-1"),
		CreatedBy: "tester",
	})
	if core.KindOf(err) != core.KindInsufficientStock {
		t.Fatalf("got %v, want kind %s", err, core.KindInsufficientStock)
	}
	if got := itemQuantity(t, svc, item.ID); !got.Equal(dec(t, "5")) {
		t.Errorf("quantity = %s after failed adjust, want 5", got)
	}
}

func TestApplyTransactionUnknownType(t *testing.T) {
	svc := newEngine(nil)

	item := mustCreateItem(t, svc, baseItem("SKU-BADTYPE", decPtr(t, "5")))

	for _, typ := range []core.TransactionType{"", "transfer", "RECEIVE", "Adjust"} {
		_, err := svc.ApplyTransaction(context.Background(), core.TransactionInput{
			ItemID:    item.ID,
			Type:      typ,
			Quantity:  dec(t, "1"),
			CreatedBy: "tester",
		})
		if core.KindOf(err) != core.KindInvalidTransactionType {
			t.Errorf("type %q: got %v, want kind %s", typ, err, core.KindInvalidTransactionType)
		}
	}

	txs, err := svc.ListItemTransactions(context.Background(), item.ID, 0, 100)
	if err != nil {
		t.Fatalf("ListItemTransactions: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("%d transactions recorded for rejected types, want 0", len(txs))
	}
}

func TestApplyTransactionItemNotFound(t *testing.T) {
	svc := newEngine(nil)

	_, err := svc.ApplyTransaction(context.Background(), core.TransactionInput{
		ItemID:    77,
		Type:      core.TransactionReceive,
		Quantity:  dec(t, "1"),
		CreatedBy: "tester",
	})
	if core.KindOf(err) != core.KindNotFound {
		t.Fatalf("got %v, want kind %s", err, core.KindNotFound)
	}
}

func TestIssueCrossesReorderPoint(t *testing.T) {
	var notified []*core.Item
	svc := newEngine(core.ReorderNotifierFunc(func(item *core.Item) {
		notified = append(notified, item)
	}))

	input := baseItem("SKU-REORDER", decPtr(t, "10"))
	input.ReorderPoint = dec(t, "5")
	item := mustCreateItem(t, svc, input)

	tx := mustApply(t, svc, core.TransactionInput{
		ItemID:    item.ID,
		Type:      core.TransactionIssue,
		Quantity:  dec(t, "6"),
		CreatedBy: "tester",
	})

	if got := itemQuantity(t, svc, item.ID); !got.Equal(dec(t, "4")) {
		t.Errorf("quantity = %s, want 4", got)
	}
	if tx.ID == 0 || tx.Timestamp.IsZero() {
		t.Error("transaction record missing server-assigned fields")
	}
	if len(notified) != 1 {
		t.Fatalf("%d reorder signals, want 1", len(notified))
	}
	if !notified[0].Quantity.Equal(dec(t, "4")) {
		t.Errorf("signal quantity = %s, want 4", notified[0].Quantity)
	}
}

func TestNoReorderSignalAbovePoint(t *testing.T) {
	fired := 0
	svc := newEngine(core.ReorderNotifierFunc(func(*core.Item) { fired++ }))

	input := baseItem("SKU-OK", decPtr(t, "10"))
	input.ReorderPoint = dec(t, "5")
	item := mustCreateItem(t, svc, input)

	mustApply(t, svc, core.TransactionInput{
		ItemID: item.ID, Type: core.TransactionIssue, Quantity: dec(t, "4"), CreatedBy: "tester",
	})
	if fired != 0 {
		t.Errorf("reorder signal fired with quantity 6 > point 5")
	}

	// Landing exactly on the point counts.
	mustApply(t, svc, core.TransactionInput{
		ItemID: item.ID, Type: core.TransactionIssue, Quantity: dec(t, "1"), CreatedBy: "tester",
	})
	if fired != 1 {
		t.Errorf("reorder signal fired %d times at quantity == point, want 1", fired)
	}
}

func TestLowStockSetTransitions(t *testing.T) {
	svc := newEngine(nil)
	ctx := context.Background()

	input := baseItem("SKU-LOW", decPtr(t, "10"))
	input.ReorderPoint = dec(t, "5")
	item := mustCreateItem(t, svc, input)

	low, err := svc.ListLowStockItems(ctx)
	if err != nil {
		t.Fatalf("ListLowStockItems: %v", err)
	}
	if len(low) != 0 {
		t.Fatalf("item low at quantity 10, point 5")
	}

	mustApply(t, svc, core.TransactionInput{
		ItemID: item.ID, Type: core.TransactionIssue, Quantity: dec(t, "5"), CreatedBy: "tester",
	})
	low, err = svc.ListLowStockItems(ctx)
	if err != nil {
		t.Fatalf("ListLowStockItems: %v", err)
	}
	if len(low) != 1 || low[0].ID != item.ID {
		t.Fatalf("item not in low-stock set at quantity == point")
	}

	mustApply(t, svc, core.TransactionInput{
		ItemID: item.ID, Type: core.TransactionReceive, Quantity: dec(t, "20"), CreatedBy: "tester",
	})
	low, err = svc.ListLowStockItems(ctx)
	if err != nil {
		t.Fatalf("ListLowStockItems: %v", err)
	}
	if len(low) != 0 {
		t.Fatalf("item still low after restock to 25")
	}
}

func TestListItemTransactionsMostRecentFirst(t *testing.T) {
	svc := newEngine(nil)

	item := mustCreateItem(t, svc, baseItem("SKU-HIST", nil))

	var ids []int64
	for _, qty := range []string{"1", "2", "3"} {
		tx := mustApply(t, svc, core.TransactionInput{
			ItemID: item.ID, Type: core.TransactionReceive, Quantity: dec(t, qty), CreatedBy: "tester",
		})
		ids = append(ids, tx.ID)
	}

	txs, err := svc.ListItemTransactions(context.Background(), item.ID, 0, 100)
	if err != nil {
		t.Fatalf("ListItemTransactions: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("%d transactions, want 3", len(txs))
	}
	for i, tx := range txs {
		if want := ids[len(ids)-1-i]; tx.ID != want {
			t.Errorf("position %d: id %d, want %d", i, tx.ID, want)
		}
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].Timestamp.After(txs[i-1].Timestamp) {
			t.Errorf("timestamps not descending at position %d", i)
		}
	}
}

func TestListItemsFilters(t *testing.T) {
	svc := newEngine(nil)
	ctx := context.Background()

	a := baseItem("SKU-A", nil)
	a.WarehouseID = 1
	a.Category = core.CategoryRawMaterial
	b := baseItem("SKU-B", nil)
	b.WarehouseID = 1
	b.Category = core.CategoryPackaging
	c := baseItem("SKU-C", nil)
	c.WarehouseID = 2
	c.Category = core.CategoryRawMaterial
	mustCreateItem(t, svc, a)
	mustCreateItem(t, svc, b)
	mustCreateItem(t, svc, c)

	wh := int64(1)
	cat := core.CategoryRawMaterial
	items, err := svc.ListItems(ctx, core.ItemFilter{WarehouseID: &wh, Category: &cat, Limit: 100})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 || items[0].SKU != "SKU-A" {
		t.Errorf("combined filter returned %d items", len(items))
	}

	items, err = svc.ListItems(ctx, core.ItemFilter{Limit: 100})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("%d items unfiltered, want 3", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].ID <= items[i-1].ID {
			t.Errorf("items not ordered by id at position %d", i)
		}
	}
}

func TestStockValueByCurrency(t *testing.T) {
	svc := newEngine(nil)
	ctx := context.Background()

	usd := baseItem("SKU-USD", decPtr(t, "2"))
	usd.UnitPrice = decPtr(t, "5")
	usd.Currency = "USD"
	eur := baseItem("SKU-EUR", decPtr(t, "4"))
	eur.UnitPrice = decPtr(t, "2.5")
	eur.Currency = "EUR"
	unpriced := baseItem("SKU-NOPRICE", decPtr(t, "100"))
	mustCreateItem(t, svc, usd)
	mustCreateItem(t, svc, eur)
	mustCreateItem(t, svc, unpriced)

	value, err := svc.GetStockValue(ctx, nil)
	if err != nil {
		t.Fatalf("GetStockValue: %v", err)
	}
	if got := value.ByCurrency["USD"]; !got.Equal(dec(t, "10")) {
		t.Errorf("USD = %s, want 10", got)
	}
	if got := value.ByCurrency["EUR"]; !got.Equal(dec(t, "10")) {
		t.Errorf("EUR = %s, want 10", got)
	}
	if len(value.ByCurrency) != 2 {
		t.Errorf("%d currency groups, want 2 (unpriced item must be excluded)", len(value.ByCurrency))
	}
	if !value.TotalValue.Equal(dec(t, "20")) {
		t.Errorf("total = %s, want 20", value.TotalValue)
	}
}

func TestStockValueWarehouseScope(t *testing.T) {
	svc := newEngine(nil)

	a := baseItem("SKU-W1", decPtr(t, "3"))
	a.WarehouseID = 1
	a.UnitPrice = decPtr(t, "10")
	b := baseItem("SKU-W2", decPtr(t, "1"))
	b.WarehouseID = 2
	b.UnitPrice = decPtr(t, "7")
	mustCreateItem(t, svc, a)
	mustCreateItem(t, svc, b)

	wh := int64(1)
	value, err := svc.GetStockValue(context.Background(), &wh)
	if err != nil {
		t.Fatalf("GetStockValue: %v", err)
	}
	if !value.TotalValue.Equal(dec(t, "30")) {
		t.Errorf("warehouse 1 total = %s, want 30", value.TotalValue)
	}
}

func TestStockValueEmptyInventory(t *testing.T) {
	svc := newEngine(nil)

	value, err := svc.GetStockValue(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetStockValue: %v", err)
	}
	if !value.TotalValue.IsZero() {
		t.Errorf("total = %s, want 0", value.TotalValue)
	}
	if value.ByCurrency == nil {
		t.Error("by_currency is nil, want empty map")
	}
}

func TestGetMetrics(t *testing.T) {
	svc := newEngine(nil)

	low := baseItem("SKU-M1", decPtr(t, "1"))
	low.ReorderPoint = dec(t, "5")
	low.UnitPrice = decPtr(t, "3")
	ok1 := baseItem("SKU-M2", decPtr(t, "50"))
	ok1.ReorderPoint = dec(t, "5")
	ok2 := baseItem("SKU-M3", decPtr(t, "50"))
	ok2.ReorderPoint = dec(t, "5")
	fine := baseItem("SKU-M4", decPtr(t, "50"))
	fine.ReorderPoint = dec(t, "5")
	mustCreateItem(t, svc, low)
	mustCreateItem(t, svc, ok1)
	mustCreateItem(t, svc, ok2)
	mustCreateItem(t, svc, fine)

	m, err := svc.GetMetrics(context.Background())
	if err != nil {
		t.Fatalf("GetMetrics: %v", err)
	}
	if m.TotalItems != 4 {
		t.Errorf("total_items = %d, want 4", m.TotalItems)
	}
	if m.LowStockItems != 1 {
		t.Errorf("low_stock_items = %d, want 1", m.LowStockItems)
	}
	if !m.LowStockPercentage.Equal(dec(t, "25")) {
		t.Errorf("low_stock_percentage = %s, want 25", m.LowStockPercentage)
	}
	if m.StockValue == nil || !m.StockValue.TotalValue.Equal(dec(t, "3")) {
		t.Errorf("stock_value = %+v, want total 3", m.StockValue)
	}
}

func TestGetMetricsEmptyInventory(t *testing.T) {
	svc := newEngine(nil)

	m, err := svc.GetMetrics(context.Background())
	if err != nil {
		t.Fatalf("GetMetrics: %v", err)
	}
	if m.TotalItems != 0 || m.LowStockItems != 0 {
		t.Errorf("counts = %d/%d, want 0/0", m.TotalItems, m.LowStockItems)
	}
	if !m.LowStockPercentage.IsZero() {
		t.Errorf("low_stock_percentage = %s, want 0", m.LowStockPercentage)
	}
}
