package ports

import (
	"context"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
)

// IntakeRepository stores intake records. Update is optimistic: it fails
// with a contention error if the record changed since it was loaded.
type IntakeRepository interface {
	Add(ctx context.Context, record *intake.Record) error
	Update(ctx context.Context, record *intake.Record) error
	Get(ctx context.Context, id kernel.UUID) (*intake.Record, error)
}

// VerificationRepository stores at most one verification per intake record.
type VerificationRepository interface {
	Add(ctx context.Context, verification *intake.Verification) error

	// UpdateNotes persists appended notes; no other field is ever rewritten.
	UpdateNotes(ctx context.Context, verification *intake.Verification) error

	// GetByIntake returns errs.ObjectNotFoundError when the record has no
	// verification yet.
	GetByIntake(ctx context.Context, intakeID kernel.UUID) (*intake.Verification, error)
}

// QCDecisionRepository stores exactly one decision per intake record. Adding
// a second decision for the same record fails with an illegal-state error.
type QCDecisionRepository interface {
	Add(ctx context.Context, decision *intake.QCDecision) error
	GetByIntake(ctx context.Context, intakeID kernel.UUID) (*intake.QCDecision, error)
}
