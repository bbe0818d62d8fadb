package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemCategory classifies what kind of stock an item is.
type ItemCategory string

const (
	CategoryRawMaterial  ItemCategory = "raw_material"
	CategoryFinishedGood ItemCategory = "finished_good"
	CategoryPackaging    ItemCategory = "packaging"
	CategorySparePart    ItemCategory = "spare_part"
)

// Valid reports whether c is one of the known categories.
func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryRawMaterial, CategoryFinishedGood, CategoryPackaging, CategorySparePart:
		return true
	}
	return false
}

// UnitOfMeasure is the unit an item's quantity is counted in.
type UnitOfMeasure string

const (
	UnitPiece UnitOfMeasure = "piece"
	UnitKg    UnitOfMeasure = "kg"
	UnitLiter UnitOfMeasure = "liter"
	UnitMeter UnitOfMeasure = "meter"
	UnitBox   UnitOfMeasure = "box"
)

// Valid reports whether u is one of the known units.
func (u UnitOfMeasure) Valid() bool {
	switch u {
	case UnitPiece, UnitKg, UnitLiter, UnitMeter, UnitBox:
		return true
	}
	return false
}

// TransactionType names a stock movement. There are exactly three:
// receive adds to stock, issue removes from stock, adjust sets an
// absolute quantity. An unrecognized type must never fall through to
// adjust semantics.
type TransactionType string

const (
	TransactionReceive TransactionType = "receive"
	TransactionIssue   TransactionType = "issue"
	TransactionAdjust  TransactionType = "adjust"
)

// Valid reports whether t is one of the three named movement types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionReceive, TransactionIssue, TransactionAdjust:
		return true
	}
	return false
}

// Item is one stock-keeping unit at one warehouse location.
// Quantity is never negative; the InventoryService enforces that
// before any commit that changes it.
type Item struct {
	ID              int64            `json:"id"`
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     *string          `json:"description,omitempty"`
	Category        ItemCategory     `json:"category"`
	Unit            UnitOfMeasure    `json:"unit"`
	Quantity        decimal.Decimal  `json:"quantity"`
	ReorderPoint    decimal.Decimal  `json:"reorder_point"`
	ReorderQuantity decimal.Decimal  `json:"reorder_quantity"`
	WarehouseID     int64            `json:"warehouse_id"`
	Location        *string          `json:"location,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Currency        string           `json:"currency"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Transaction is an immutable ledger entry for a single stock movement
// applied to exactly one item. Records are append-only: once created
// they are never mutated or deleted.
type Transaction struct {
	ID        int64           `json:"id"`
	ItemID    int64           `json:"item_id"`
	Type      TransactionType `json:"transaction_type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reference *string         `json:"reference,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	CreatedBy string          `json:"created_by"`
	Notes     *string         `json:"notes,omitempty"`
}

// Warehouse is a physical storage location holding many items.
// Capacity fields are bookkeeping only: nothing enforces
// UsedCapacity <= TotalCapacity, and inventory transactions do not
// touch them.
type Warehouse struct {
	ID            int64            `json:"id"`
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Address       string           `json:"address"`
	ContactPerson *string          `json:"contact_person,omitempty"`
	ContactEmail  *string          `json:"contact_email,omitempty"`
	ContactPhone  *string          `json:"contact_phone,omitempty"`
	TotalCapacity *decimal.Decimal `json:"total_capacity,omitempty"`
	UsedCapacity  decimal.Decimal  `json:"used_capacity"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// StockValue is the valuation report: sum(quantity * unit_price)
// grouped by currency. TotalValue is the raw sum across all currency
// groups with no conversion, kept as-is for compatibility. Items
// without a unit price are excluded from the aggregation.
type StockValue struct {
	TotalValue decimal.Decimal            `json:"total_value"`
	ByCurrency map[string]decimal.Decimal `json:"by_currency"`
}

// Metrics is the monitoring summary over the whole inventory.
type Metrics struct {
	TotalItems         int64           `json:"total_items"`
	LowStockItems      int64           `json:"low_stock_items"`
	StockValue         *StockValue     `json:"stock_value"`
	LowStockPercentage decimal.Decimal `json:"low_stock_percentage"`
}

// ItemInput holds the fields required to create a new item.
// Quantity defaults to zero when nil.
type ItemInput struct {
	SKU             string
	Name            string
	Description     *string
	Category        ItemCategory
	Unit            UnitOfMeasure
	Quantity        *decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
	WarehouseID     int64
	Location        *string
	UnitPrice       *decimal.Decimal
	Currency        string
}

// ItemPatch is a sparse field-level update: nil fields are left
// untouched. SKU is immutable after creation and deliberately absent.
type ItemPatch struct {
	Name            *string
	Description     *string
	Category        *ItemCategory
	Unit            *UnitOfMeasure
	ReorderPoint    *decimal.Decimal
	ReorderQuantity *decimal.Decimal
	WarehouseID     *int64
	Location        *string
	UnitPrice       *decimal.Decimal
	Currency        *string
}

// Empty reports whether the patch sets no fields at all.
func (p ItemPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Unit == nil && p.ReorderPoint == nil && p.ReorderQuantity == nil &&
		p.WarehouseID == nil && p.Location == nil && p.UnitPrice == nil &&
		p.Currency == nil
}

// TransactionInput holds the fields for one apply-transaction call.
// For receive/issue, Quantity is a magnitude; for adjust it is the
// absolute quantity the item is set to.
type TransactionInput struct {
	ItemID    int64
	Type      TransactionType
	Quantity  decimal.Decimal
	Reference *string
	CreatedBy string
	Notes     *string
}

// WarehouseInput holds the fields required to create a new warehouse.
type WarehouseInput struct {
	Code          string
	Name          string
	Address       string
	ContactPerson *string
	ContactEmail  *string
	ContactPhone  *string
	TotalCapacity *decimal.Decimal
}

// WarehousePatch is a sparse field-level warehouse update.
type WarehousePatch struct {
	Name          *string
	Address       *string
	ContactPerson *string
	ContactEmail  *string
	ContactPhone  *string
	TotalCapacity *decimal.Decimal
	UsedCapacity  *decimal.Decimal
	IsActive      *bool
}
