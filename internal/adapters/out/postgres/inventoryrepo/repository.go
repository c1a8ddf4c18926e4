package inventoryrepo

import (
	"context"
	"errors"
	"time"

	"custody/internal/adapters/out/postgres/dberrs"
	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/metrics"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(aggregate kernel.Aggregate)
}

// GormInventoryRepository implements ports.InventoryRepository.
type GormInventoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormInventoryRepository(db *gorm.DB, tracker aggregateTracker) *GormInventoryRepository {
	return &GormInventoryRepository{db: db, tracker: tracker}
}

// Add inserts a new item with its stock_in movement. A second item for the
// same intake violates the unique intake_id index and is an illegal state.
func (r *GormInventoryRepository) Add(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	movements := item.UncommittedMovements()
	if err := r.insertPending(ctx, movements); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberrs.IsUniqueViolation(err) {
			return errs.NewIllegalStateError("intake", item.IntakeID().String(), "stocked", "place in stock twice")
		}
		return dberrs.Classify("inventory item insert", err)
	}

	return r.commitMovements(ctx, item, movements)
}

// Update appends the item's new movements and rewrites its snapshot if the
// stored version still matches.
func (r *GormInventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	movements := item.UncommittedMovements()
	if err := r.insertPending(ctx, movements); err != nil {
		return err
	}

	dto := itemFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"location":    dto.Location,
			"showroom_id": dto.ShowroomID,
			"status":      dto.Status,
			"last_seq":    dto.LastSeq,
			"version":     dto.Version + 1,
		})
	if result.Error != nil {
		return dberrs.Classify("inventory snapshot update", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, item.ID()); err != nil {
			return err
		}
		return errs.NewContentionError("inventory snapshot update", nil)
	}

	item.IncrementVersion()
	return r.commitMovements(ctx, item, movements)
}

func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory item", id.String())
		}
		return nil, dberrs.Classify("inventory item load", err)
	}
	return itemToDomain(dto)
}

func (r *GormInventoryRepository) ExistsForIntake(ctx context.Context, intakeID kernel.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ItemDTO{}).Where("intake_id = ?", intakeID.Bytes()).Count(&count).Error
	if err != nil {
		return false, dberrs.Classify("inventory item lookup", err)
	}
	return count > 0, nil
}

func (r *GormInventoryRepository) ListInStock(ctx context.Context) ([]*inventory.Item, error) {
	var dtos []ItemDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", inventory.InStock.String()).
		Order("stock_in_date").
		Find(&dtos).Error
	if err != nil {
		return nil, dberrs.Classify("inventory in-stock list", err)
	}

	items := make([]*inventory.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *GormInventoryRepository) Movements(ctx context.Context, itemID kernel.UUID) ([]*inventory.Movement, error) {
	if err := itemID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MovementDTO
	err := r.db.WithContext(ctx).Where("item_id = ?", itemID.Bytes()).Order("at, seq").Find(&dtos).Error
	if err != nil {
		return nil, dberrs.Classify("movement list", err)
	}
	return movementsToDomain(dtos)
}

func (r *GormInventoryRepository) ListPendingMovements(ctx context.Context, olderThan time.Time) ([]*inventory.Movement, error) {
	var dtos []MovementDTO
	err := r.db.WithContext(ctx).
		Where("pending = ? AND at < ?", true, olderThan).
		Order("at, seq").
		Find(&dtos).Error
	if err != nil {
		return nil, dberrs.Classify("pending movement list", err)
	}
	return movementsToDomain(dtos)
}

func (r *GormInventoryRepository) CompletePendingMovement(ctx context.Context, movementID kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&MovementDTO{}).
		Where("id = ? AND pending = ?", movementID.Bytes(), true).
		Update("pending", false)
	if result.Error != nil {
		return dberrs.Classify("pending movement completion", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pending movement", movementID.String())
	}
	return nil
}

func (r *GormInventoryRepository) DeletePendingMovement(ctx context.Context, movementID kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND pending = ?", movementID.Bytes(), true).
		Delete(&MovementDTO{})
	if result.Error != nil {
		return dberrs.Classify("pending movement deletion", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pending movement", movementID.String())
	}
	return nil
}

func (r *GormInventoryRepository) insertPending(ctx context.Context, movements []*inventory.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	dtos := make([]MovementDTO, 0, len(movements))
	for _, m := range movements {
		dtos = append(dtos, movementFromDomain(m))
	}
	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return dberrs.Classify("movement insert", err)
	}
	return nil
}

// commitMovements clears the pending flag once the snapshot reflects the
// movements, then hands the aggregate to the tracker for event publishing.
func (r *GormInventoryRepository) commitMovements(
	ctx context.Context,
	item *inventory.Item,
	movements []*inventory.Movement,
) error {
	if len(movements) > 0 {
		ids := make([]any, 0, len(movements))
		for _, m := range movements {
			ids = append(ids, m.ID().Bytes())
		}
		err := r.db.WithContext(ctx).Model(&MovementDTO{}).Where("id IN ?", ids).Update("pending", false).Error
		if err != nil {
			return dberrs.Classify("movement completion", err)
		}
	}

	for _, m := range movements {
		metrics.LedgerMovementsTotal.WithLabelValues(m.Type().String()).Inc()
	}
	item.MarkMovementsCommitted()
	r.tracker.TrackAggregate(item)
	return nil
}

func movementsToDomain(dtos []MovementDTO) ([]*inventory.Movement, error) {
	movements := make([]*inventory.Movement, 0, len(dtos))
	for _, dto := range dtos {
		m, err := movementToDomain(dto)
		if err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, nil
}
