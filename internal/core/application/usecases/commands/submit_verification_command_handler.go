package commands

import (
	"context"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
)

// SubmitVerificationCommandHandler creates the verification of a pickup and
// advances the record through picked_up into qc_review in one transaction.
type SubmitVerificationCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      kernel.Clock
}

func NewSubmitVerificationCommandHandler(uowFactory ports.UnitOfWorkFactory, clock kernel.Clock) SubmitVerificationCommandHandler {
	return SubmitVerificationCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h SubmitVerificationCommandHandler) Handle(ctx context.Context, command SubmitVerificationCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	intakes := uow.IntakeRepository()
	record, err := intakes.Get(ctx, command.IntakeID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if record.SourceType() != intake.SourcePickup {
		return kernel.UUID{}, observe("submit_verification",
			errs.NewIllegalStateError("intake", record.ID().String(), record.Status().String(), "submit a pickup verification"))
	}

	now := h.clock.Now()
	verification, err := intake.NewVerification(kernel.NewUUID(), record.ID(), record.SourceType(), command.Capture(), now)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = record.CompletePickup(verification, now); err != nil {
		return kernel.UUID{}, observe("submit_verification", err)
	}
	if err = record.OpenReview(now); err != nil {
		return kernel.UUID{}, observe("submit_verification", err)
	}

	if err = uow.VerificationRepository().Add(ctx, verification); err != nil {
		return kernel.UUID{}, err
	}
	if err = intakes.Update(ctx, record); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}
	return verification.ID(), nil
}
