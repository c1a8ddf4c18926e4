package commands

import (
	"context"
	"errors"
	"time"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
)

// QCDecided reports the outcome of a decision. InventoryItemID is nil for rejections.
type QCDecided struct {
	DecisionID      kernel.UUID
	Status          intake.Status
	InventoryItemID *kernel.UUID
}

// DecideQCCommandHandler records the QC decision, moves the record to its
// terminal state and, unless rejected, places the device in stock. All three
// writes share one transaction: either the record is decided and stocked, or
// nothing changed.
type DecideQCCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      kernel.Clock
}

func NewDecideQCCommandHandler(uowFactory ports.UnitOfWorkFactory, clock kernel.Clock) DecideQCCommandHandler {
	return DecideQCCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h DecideQCCommandHandler) Handle(ctx context.Context, command DecideQCCommand) (QCDecided, error) {
	if err := command.Validate(); err != nil {
		return QCDecided{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return QCDecided{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	intakes := uow.IntakeRepository()
	record, err := intakes.Get(ctx, command.IntakeID())
	if err != nil {
		return QCDecided{}, err
	}

	now := h.clock.Now()
	decision, err := intake.NewQCDecision(kernel.NewUUID(), record, command.Input(), now)
	if err != nil {
		return QCDecided{}, err
	}
	if err = record.Decide(decision, now); err != nil {
		return QCDecided{}, observe("decide_qc", err)
	}

	if err = uow.QCDecisionRepository().Add(ctx, decision); err != nil {
		return QCDecided{}, observe("decide_qc", err)
	}
	if err = intakes.Update(ctx, record); err != nil {
		return QCDecided{}, err
	}

	result := QCDecided{DecisionID: decision.ID(), Status: record.Status()}

	if decision.Decision() != intake.DecisionReject {
		itemID, stockErr := h.placeInStock(ctx, uow, record, decision, now)
		if stockErr != nil {
			return QCDecided{}, observe("decide_qc", stockErr)
		}
		result.InventoryItemID = &itemID
	}

	if err = uow.Commit(ctx); err != nil {
		return QCDecided{}, err
	}
	return result, nil
}

func (h DecideQCCommandHandler) placeInStock(
	ctx context.Context,
	uow ports.UnitOfWork,
	record *intake.Record,
	decision *intake.QCDecision,
	now time.Time,
) (kernel.UUID, error) {
	items := uow.InventoryRepository()

	exists, err := items.ExistsForIntake(ctx, record.ID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if exists {
		return kernel.UUID{}, errs.NewIllegalStateError("intake", record.ID().String(), record.Status().String(), "place in stock twice")
	}

	verification, err := uow.VerificationRepository().GetByIntake(ctx, record.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	item, err := inventory.PlaceInStock(kernel.NewUUID(), record, verification, decision, now)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = items.Add(ctx, item); err != nil {
		return kernel.UUID{}, err
	}
	return item.ID(), nil
}
