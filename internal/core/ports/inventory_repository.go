package ports

import (
	"context"
	"time"

	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
)

// InventoryRepository persists items together with their movement logs.
//
// Add and Update write the item's uncommitted movements flagged as pending,
// then the version-checked snapshot, then clear the flag. Inside a unit of
// work this is one transaction; a pending movement found later means a write
// was interrupted and must be repaired.
type InventoryRepository interface {
	Add(ctx context.Context, item *inventory.Item) error
	Update(ctx context.Context, item *inventory.Item) error
	Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error)

	// ExistsForIntake reports whether an item was already placed for the record.
	ExistsForIntake(ctx context.Context, intakeID kernel.UUID) (bool, error)

	// ListInStock returns every item whose status is in_stock.
	ListInStock(ctx context.Context) ([]*inventory.Item, error)

	// Movements returns the item's full log in replay order, pending entries included.
	Movements(ctx context.Context, itemID kernel.UUID) ([]*inventory.Movement, error)

	// ListPendingMovements returns pending movements recorded before olderThan.
	ListPendingMovements(ctx context.Context, olderThan time.Time) ([]*inventory.Movement, error)

	// CompletePendingMovement clears the pending flag of one movement.
	CompletePendingMovement(ctx context.Context, movementID kernel.UUID) error

	// DeletePendingMovement removes a pending movement whose snapshot write
	// never happened.
	DeletePendingMovement(ctx context.Context, movementID kernel.UUID) error
}
