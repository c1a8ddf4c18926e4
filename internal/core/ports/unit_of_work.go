package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Every repository it hands
// out is bound to the transaction opened by Begin. Aggregates written
// through those repositories are tracked and their domain events published
// once Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	IntakeRepository() IntakeRepository
	VerificationRepository() VerificationRepository
	QCDecisionRepository() QCDecisionRepository
	InventoryRepository() InventoryRepository
}
