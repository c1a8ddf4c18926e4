package commands

import (
	"context"
	"fmt"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"
	"custody/internal/core/ports"
)

// IntakeCreated identifies a freshly created intake record.
type IntakeCreated struct {
	IntakeID kernel.UUID
	OrderID  orderid.OrderID
}

// CreatePickupIntakeCommandHandler issues an order identifier and stores a
// pending pickup record. The identifier is allocated before the transaction,
// so a failed insert burns a sequence number but never reuses one.
type CreatePickupIntakeCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	generator  OrderIDGenerator
	clock      kernel.Clock
}

func NewCreatePickupIntakeCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	generator OrderIDGenerator,
	clock kernel.Clock,
) CreatePickupIntakeCommandHandler {
	return CreatePickupIntakeCommandHandler{uowFactory: uowFactory, generator: generator, clock: clock}
}

func (h CreatePickupIntakeCommandHandler) Handle(ctx context.Context, command CreatePickupIntakeCommand) (IntakeCreated, error) {
	if err := command.Validate(); err != nil {
		return IntakeCreated{}, err
	}

	orderID, err := h.generator.Generate(ctx, command.Location())
	if err != nil {
		return IntakeCreated{}, err
	}

	record, err := intake.NewPickupRecord(kernel.NewUUID(), orderID, command.Details(), h.clock.Now())
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
		return IntakeCreated{}, fmt.Errorf("store pickup intake %s: %w", orderID, err)
	}

	if err = uow.Commit(ctx); err != nil {
		return IntakeCreated{}, err
	}
	return IntakeCreated{IntakeID: record.ID(), OrderID: orderID}, nil
}
