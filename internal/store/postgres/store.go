// Package postgres implements core.Store on PostgreSQL via pgx.
//
// The apply-transaction unit locks the item row with SELECT ... FOR
// UPDATE before computing the new quantity, so concurrent movements
// against the same item serialize at the database and cannot both read
// stale stock. All multi-statement writes run inside one transaction:
// either the movement record and the quantity update both commit, or
// neither does.
package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"inventory-service/internal/core"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	pool *pgxpool.Pool
}

var _ core.Store = (*Store)(nil)

// NewStore wraps a connection pool. The pool is owned by the caller.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// EnsureSchema applies the embedded schema. Statements are idempotent,
// so this is safe to run on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	// Class 23 — integrity constraint violation.
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23")
}

// ── Items ────────────────────────────────────────────────────────────

const itemCols = `id, sku, name, description, category, unit,
	quantity, reorder_point, reorder_quantity,
	warehouse_id, location, unit_price, currency, created_at, updated_at`

func scanItem(row pgx.Row) (*core.Item, error) {
	var it core.Item
	err := row.Scan(
		&it.ID, &it.SKU, &it.Name, &it.Description, &it.Category, &it.Unit,
		&it.Quantity, &it.ReorderPoint, &it.ReorderQuantity,
		&it.WarehouseID, &it.Location, &it.UnitPrice, &it.Currency,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (s *Store) CreateItem(ctx context.Context, item *core.Item) (*core.Item, error) {
	created, err := scanItem(s.pool.QueryRow(ctx, `
		INSERT INTO items (sku, name, description, category, unit,
		                   quantity, reorder_point, reorder_quantity,
		                   warehouse_id, location, unit_price, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+itemCols,
		item.SKU, item.Name, item.Description, item.Category, item.Unit,
		item.Quantity, item.ReorderPoint, item.ReorderQuantity,
		item.WarehouseID, item.Location, item.UnitPrice, item.Currency,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, core.WrapErr(core.KindDuplicateKey, err, "sku %q taken", item.SKU)
		}
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return created, nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*core.Item, error) {
	item, err := scanItem(s.pool.QueryRow(ctx,
		`SELECT `+itemCols+` FROM items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	return item, nil
}

func (s *Store) ListItems(ctx context.Context, f core.ItemFilter) ([]core.Item, error) {
	var (
		where []string
		args  []any
	)
	if f.WarehouseID != nil {
		args = append(args, *f.WarehouseID)
		where = append(where, fmt.Sprintf("warehouse_id = $%d", len(args)))
	}
	if f.Category != nil {
		args = append(args, *f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	q := `SELECT ` + itemCols + ` FROM items`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Skip)
	q += fmt.Sprintf(" ORDER BY id OFFSET $%d", len(args))
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []core.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (s *Store) UpdateItem(ctx context.Context, id int64, patch core.ItemPatch) (*core.Item, error) {
	sets := []string{"updated_at = NOW()"}
	var args []any

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Unit != nil {
		set("unit", *patch.Unit)
	}
	if patch.ReorderPoint != nil {
		set("reorder_point", *patch.ReorderPoint)
	}
	if patch.ReorderQuantity != nil {
		set("reorder_quantity", *patch.ReorderQuantity)
	}
	if patch.WarehouseID != nil {
		set("warehouse_id", *patch.WarehouseID)
	}
	if patch.Location != nil {
		set("location", *patch.Location)
	}
	if patch.UnitPrice != nil {
		set("unit_price", *patch.UnitPrice)
	}
	if patch.Currency != nil {
		set("currency", *patch.Currency)
	}

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE items SET %s WHERE id = $%d RETURNING `+itemCols,
		strings.Join(sets, ", "), len(args))

	item, err := scanItem(s.pool.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.Errf(core.KindNotFound, "item %d not found", id)
	}
	if err != nil {
		if isConstraintViolation(err) {
			return nil, core.WrapErr(core.KindConflict, err, "item %d update violates a constraint", id)
		}
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	return item, nil
}

func (s *Store) ApplyTransaction(ctx context.Context, itemID int64, fn core.ApplyFn) (*core.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Row lock serializes concurrent movements on the same item.
	item, err := scanItem(tx.QueryRow(ctx,
		`SELECT `+itemCols+` FROM items WHERE id = $1 FOR UPDATE`, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.Errf(core.KindNotFound, "item %d not found", itemID)
	}
	if err != nil {
		return nil, fmt.Errorf("lock item %d: %w", itemID, err)
	}

	newQty, rec, err := fn(item)
	if err != nil {
		return nil, err
	}

	created := *rec
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (item_id, transaction_type, quantity, reference, created_by, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, ts`,
		itemID, rec.Type, rec.Quantity, rec.Reference, rec.CreatedBy, rec.Notes,
	).Scan(&created.ID, &created.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	created.ItemID = itemID

	if _, err := tx.Exec(ctx,
		`UPDATE items SET quantity = $1, updated_at = NOW() WHERE id = $2`,
		newQty, itemID,
	); err != nil {
		return nil, fmt.Errorf("update quantity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &created, nil
}

func (s *Store) ListItemTransactions(ctx context.Context, itemID int64, skip, limit int) ([]core.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, item_id, transaction_type, quantity, reference, ts, created_by, notes
		FROM transactions
		WHERE item_id = $1
		ORDER BY ts DESC, id DESC
		OFFSET $2 LIMIT $3`,
		itemID, skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.ItemID, &t.Type, &t.Quantity,
			&t.Reference, &t.Timestamp, &t.CreatedBy, &t.Notes); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (s *Store) ListLowStockItems(ctx context.Context) ([]core.Item, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+itemCols+` FROM items WHERE quantity <= reorder_point ORDER BY sku`)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var items []core.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

func (s *Store) StockValueByCurrency(ctx context.Context, warehouseID *int64) (map[string]decimal.Decimal, error) {
	q := `SELECT currency, SUM(quantity * unit_price)
	      FROM items
	      WHERE unit_price IS NOT NULL`
	var args []any
	if warehouseID != nil {
		args = append(args, *warehouseID)
		q += " AND warehouse_id = $1"
	}
	q += " GROUP BY currency"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("stock value: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]decimal.Decimal)
	for rows.Next() {
		var currency string
		var total decimal.Decimal
		if err := rows.Scan(&currency, &total); err != nil {
			return nil, fmt.Errorf("scan stock value: %w", err)
		}
		totals[currency] = total
	}
	return totals, rows.Err()
}

func (s *Store) CountItems(ctx context.Context) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}

// ── Warehouses ───────────────────────────────────────────────────────

const warehouseCols = `id, code, name, address, contact_person, contact_email, contact_phone,
	total_capacity, used_capacity, is_active, created_at, updated_at`

func scanWarehouse(row pgx.Row) (*core.Warehouse, error) {
	var w core.Warehouse
	err := row.Scan(
		&w.ID, &w.Code, &w.Name, &w.Address,
		&w.ContactPerson, &w.ContactEmail, &w.ContactPhone,
		&w.TotalCapacity, &w.UsedCapacity, &w.IsActive,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) CreateWarehouse(ctx context.Context, w *core.Warehouse) (*core.Warehouse, error) {
	created, err := scanWarehouse(s.pool.QueryRow(ctx, `
		INSERT INTO warehouses (code, name, address, contact_person, contact_email, contact_phone,
		                        total_capacity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+warehouseCols,
		w.Code, w.Name, w.Address, w.ContactPerson, w.ContactEmail, w.ContactPhone,
		w.TotalCapacity, w.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, core.WrapErr(core.KindDuplicateKey, err, "warehouse code %q taken", w.Code)
		}
		return nil, fmt.Errorf("insert warehouse: %w", err)
	}
	return created, nil
}

func (s *Store) GetWarehouse(ctx context.Context, id int64) (*core.Warehouse, error) {
	w, err := scanWarehouse(s.pool.QueryRow(ctx,
		`SELECT `+warehouseCols+` FROM warehouses WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get warehouse %d: %w", id, err)
	}
	return w, nil
}

func (s *Store) ListWarehouses(ctx context.Context, activeOnly bool) ([]core.Warehouse, error) {
	q := `SELECT ` + warehouseCols + ` FROM warehouses`
	if activeOnly {
		q += " WHERE is_active = true"
	}
	q += " ORDER BY code"

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []core.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func (s *Store) UpdateWarehouse(ctx context.Context, id int64, patch core.WarehousePatch) (*core.Warehouse, error) {
	sets := []string{"updated_at = NOW()"}
	var args []any

	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Address != nil {
		set("address", *patch.Address)
	}
	if patch.ContactPerson != nil {
		set("contact_person", *patch.ContactPerson)
	}
	if patch.ContactEmail != nil {
		set("contact_email", *patch.ContactEmail)
	}
	if patch.ContactPhone != nil {
		set("contact_phone", *patch.ContactPhone)
	}
	if patch.TotalCapacity != nil {
		set("total_capacity", *patch.TotalCapacity)
	}
	if patch.UsedCapacity != nil {
		set("used_capacity", *patch.UsedCapacity)
	}
	if patch.IsActive != nil {
		set("is_active", *patch.IsActive)
	}

	args = append(args, id)
	q := fmt.Sprintf(`UPDATE warehouses SET %s WHERE id = $%d RETURNING `+warehouseCols,
		strings.Join(sets, ", "), len(args))

	w, err := scanWarehouse(s.pool.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.Errf(core.KindNotFound, "warehouse %d not found", id)
	}
	if err != nil {
		if isConstraintViolation(err) {
			return nil, core.WrapErr(core.KindConflict, err, "warehouse %d update violates a constraint", id)
		}
		return nil, fmt.Errorf("update warehouse %d: %w", id, err)
	}
	return w, nil
}
