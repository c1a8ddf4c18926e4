package intakerepo

import (
	"context"
	"errors"

	"custody/internal/adapters/out/postgres/dberrs"
	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(aggregate kernel.Aggregate)
}

// GormIntakeRepository implements ports.IntakeRepository.
type GormIntakeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormIntakeRepository(db *gorm.DB, tracker aggregateTracker) *GormIntakeRepository {
	return &GormIntakeRepository{db: db, tracker: tracker}
}

func (r *GormIntakeRepository) Add(ctx context.Context, record *intake.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := recordFromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberrs.Classify("intake insert", err)
	}

	r.tracker.TrackAggregate(record)
	return nil
}

// Update writes the mutable columns if the stored version still matches the
// loaded one and bumps it. A lost race yields a contention error.
func (r *GormIntakeRepository) Update(ctx context.Context, record *intake.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := recordFromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&IntakeDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":     dto.Status,
			"agent_id":   dto.AgentID,
			"updated_at": dto.UpdatedAt,
			"version":    dto.Version + 1,
		})
	if result.Error != nil {
		return dberrs.Classify("intake update", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, record.ID()); err != nil {
			return err
		}
		return errs.NewContentionError("intake update", nil)
	}

	record.IncrementVersion()
	r.tracker.TrackAggregate(record)
	return nil
}

func (r *GormIntakeRepository) Get(ctx context.Context, id kernel.UUID) (*intake.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto IntakeDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("intake", id.String())
		}
		return nil, dberrs.Classify("intake load", err)
	}

	return recordToDomain(dto)
}

// GormVerificationRepository implements ports.VerificationRepository.
type GormVerificationRepository struct {
	db *gorm.DB
}

func NewGormVerificationRepository(db *gorm.DB) *GormVerificationRepository {
	return &GormVerificationRepository{db: db}
}

func (r *GormVerificationRepository) Add(ctx context.Context, v *intake.Verification) error {
	if v == nil {
		return errs.NewValueIsRequiredError("verification")
	}

	dto := verificationFromDomain(v)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberrs.IsUniqueViolation(err) {
			return errs.NewIllegalStateError("intake", v.IntakeID().String(), "verified", "verify again")
		}
		return dberrs.Classify("verification insert", err)
	}
	return nil
}

func (r *GormVerificationRepository) UpdateNotes(ctx context.Context, v *intake.Verification) error {
	if v == nil {
		return errs.NewValueIsRequiredError("verification")
	}

	dto := verificationFromDomain(v)
	result := r.db.WithContext(ctx).Model(&dto).Select("notes").Updates(&dto)
	if result.Error != nil {
		return dberrs.Classify("verification notes update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("verification", v.ID().String())
	}
	return nil
}

func (r *GormVerificationRepository) GetByIntake(ctx context.Context, intakeID kernel.UUID) (*intake.Verification, error) {
	if err := intakeID.Validate(); err != nil {
		return nil, err
	}

	var dto VerificationDTO
	if err := r.db.WithContext(ctx).Take(&dto, "intake_id = ?", intakeID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("verification", intakeID.String())
		}
		return nil, dberrs.Classify("verification load", err)
	}
	return verificationToDomain(dto)
}

// GormQCDecisionRepository implements ports.QCDecisionRepository.
type GormQCDecisionRepository struct {
	db *gorm.DB
}

func NewGormQCDecisionRepository(db *gorm.DB) *GormQCDecisionRepository {
	return &GormQCDecisionRepository{db: db}
}

// Add inserts the decision. The unique intake_id index turns a concurrent
// second decision into an illegal-state error.
func (r *GormQCDecisionRepository) Add(ctx context.Context, d *intake.QCDecision) error {
	if d == nil {
		return errs.NewValueIsRequiredError("qc decision")
	}

	dto := decisionFromDomain(d)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if dberrs.IsUniqueViolation(err) {
			return errs.NewIllegalStateError("intake", d.IntakeID().String(), "decided", "decide again")
		}
		return dberrs.Classify("qc decision insert", err)
	}
	return nil
}

func (r *GormQCDecisionRepository) GetByIntake(ctx context.Context, intakeID kernel.UUID) (*intake.QCDecision, error) {
	if err := intakeID.Validate(); err != nil {
		return nil, err
	}

	var dto QCDecisionDTO
	if err := r.db.WithContext(ctx).Take(&dto, "intake_id = ?", intakeID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("qc decision", intakeID.String())
		}
		return nil, dberrs.Classify("qc decision load", err)
	}
	return decisionToDomain(dto)
}
