package counterrepo

import (
	"context"
	"errors"
	"time"

	"custody/internal/adapters/out/postgres/dberrs"
	"custody/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCounterStore implements ports.SequenceCounterStore on a single row of
// sequence_counters. The transactional tier locks the row with SELECT ... FOR
// UPDATE; dialects without row locks (sqlite) serialise whole transactions.
type GormCounterStore struct {
	db   *gorm.DB
	name string
}

func NewGormCounterStore(db *gorm.DB) *GormCounterStore {
	return &GormCounterStore{db: db, name: OrderSequenceName}
}

// Load reads the counter without locking.
func (s *GormCounterStore) Load(ctx context.Context) (int64, bool, error) {
	var dto CounterDTO
	err := s.db.WithContext(ctx).Take(&dto, "name = ?", s.name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, dberrs.Classify("counter load", err)
	}
	return dto.Count, true, nil
}

// CompareAndSwap writes next only when the stored count equals current.
func (s *GormCounterStore) CompareAndSwap(ctx context.Context, current, next int64) error {
	result := s.db.WithContext(ctx).
		Model(&CounterDTO{}).
		Where("name = ? AND count = ?", s.name, current).
		Updates(map[string]any{"count": next, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return dberrs.Classify("counter compare-and-swap", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewContentionError("counter compare-and-swap", nil)
	}
	return nil
}

// IncrementInTransaction locks the row, increments it and returns the new
// value. A missing row is inserted at initial first; a concurrent insert of
// the same row surfaces as contention and is retried by the caller.
func (s *GormCounterStore) IncrementInTransaction(ctx context.Context, initial int64) (int64, error) {
	var next int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dto CounterDTO
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Take(&dto, "name = ?", s.name).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			dto = CounterDTO{Name: s.name, Count: initial + 1, UpdatedAt: time.Now().UTC()}
			if err = tx.Create(&dto).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			dto.Count++
			dto.UpdatedAt = time.Now().UTC()
			if err = tx.Model(&CounterDTO{}).Where("name = ?", s.name).
				Updates(map[string]any{"count": dto.Count, "updated_at": dto.UpdatedAt}).Error; err != nil {
				return err
			}
		}
		next = dto.Count
		return nil
	})
	if err != nil {
		return 0, dberrs.Classify("counter transactional increment", err)
	}
	return next, nil
}

// Overwrite upserts next without any condition.
func (s *GormCounterStore) Overwrite(ctx context.Context, next int64) error {
	dto := CounterDTO{Name: s.name, Count: next, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"count", "updated_at"}),
	}).Create(&dto).Error
	return dberrs.Classify("counter overwrite", err)
}
