package core

import "context"

// WarehouseService manages warehouse master data. Warehouses are
// maintained independently of inventory transactions; capacity fields
// are informational only.
type WarehouseService interface {
	// CreateWarehouse persists a new warehouse. A duplicate code
	// fails with KindDuplicateKey.
	CreateWarehouse(ctx context.Context, input WarehouseInput) (*Warehouse, error)

	// GetWarehouse returns (nil, nil) when the ID does not resolve.
	GetWarehouse(ctx context.Context, id int64) (*Warehouse, error)

	// ListWarehouses returns warehouses ordered by code.
	ListWarehouses(ctx context.Context, activeOnly bool) ([]Warehouse, error)

	// UpdateWarehouse applies only the fields set in patch.
	UpdateWarehouse(ctx context.Context, id int64, patch WarehousePatch) (*Warehouse, error)
}

type warehouseService struct {
	store Store
}

// NewWarehouseService constructs a WarehouseService over the store.
func NewWarehouseService(store Store) WarehouseService {
	return &warehouseService{store: store}
}

func (s *warehouseService) CreateWarehouse(ctx context.Context, input WarehouseInput) (*Warehouse, error) {
	w := &Warehouse{
		Code:          input.Code,
		Name:          input.Name,
		Address:       input.Address,
		ContactPerson: input.ContactPerson,
		ContactEmail:  input.ContactEmail,
		ContactPhone:  input.ContactPhone,
		TotalCapacity: input.TotalCapacity,
		IsActive:      true,
	}

	created, err := s.store.CreateWarehouse(ctx, w)
	if err != nil {
		if KindOf(err) == KindDuplicateKey {
			return nil, WrapErr(KindDuplicateKey, err, "warehouse with code %q already exists", input.Code)
		}
		return nil, classifyStore("create warehouse", err)
	}
	return created, nil
}

func (s *warehouseService) GetWarehouse(ctx context.Context, id int64) (*Warehouse, error) {
	w, err := s.store.GetWarehouse(ctx, id)
	if err != nil {
		return nil, classifyStore("get warehouse", err)
	}
	return w, nil
}

func (s *warehouseService) ListWarehouses(ctx context.Context, activeOnly bool) ([]Warehouse, error) {
	ws, err := s.store.ListWarehouses(ctx, activeOnly)
	if err != nil {
		return nil, classifyStore("list warehouses", err)
	}
	return ws, nil
}

func (s *warehouseService) UpdateWarehouse(ctx context.Context, id int64, patch WarehousePatch) (*Warehouse, error) {
	w, err := s.store.UpdateWarehouse(ctx, id, patch)
	if err != nil {
		switch KindOf(err) {
		case KindNotFound:
			return nil, WrapErr(KindNotFound, err, "warehouse %d not found", id)
		case KindDuplicateKey, KindConflict:
			return nil, WrapErr(KindConflict, err, "warehouse update conflicts with existing state")
		}
		return nil, classifyStore("update warehouse", err)
	}
	return w, nil
}
