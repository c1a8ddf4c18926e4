package commands

import (
	"context"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
)

// CreateWalkInIntakeCommandHandler stores a walk-in record together with its
// verification in one transaction.
type CreateWalkInIntakeCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	generator  OrderIDGenerator
	clock      kernel.Clock
}

func NewCreateWalkInIntakeCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	generator OrderIDGenerator,
	clock kernel.Clock,
) CreateWalkInIntakeCommandHandler {
	return CreateWalkInIntakeCommandHandler{uowFactory: uowFactory, generator: generator, clock: clock}
}

func (h CreateWalkInIntakeCommandHandler) Handle(ctx context.Context, command CreateWalkInIntakeCommand) (IntakeCreated, error) {
	if err := command.Validate(); err != nil {
		return IntakeCreated{}, err
	}

	orderID, err := h.generator.Generate(ctx, command.Location())
	if err != nil {
		return IntakeCreated{}, err
	}

	record, verification, err := intake.NewWalkInRecord(
		kernel.NewUUID(), kernel.NewUUID(), orderID, command.Details(), command.Capture(), h.clock.Now())
	if err != nil {
		return IntakeCreated{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return IntakeCreated{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.IntakeRepository().Add(ctx, record); err != nil {
		return IntakeCreated{}, err
	}
	if err = uow.VerificationRepository().Add(ctx, verification); err != nil {
		return IntakeCreated{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return IntakeCreated{}, err
	}
	return IntakeCreated{IntakeID: record.ID(), OrderID: orderID}, nil
}
