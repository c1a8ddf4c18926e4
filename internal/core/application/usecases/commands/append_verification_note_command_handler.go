package commands

import (
	"context"

	"custody/internal/core/ports"
)

type AppendVerificationNoteCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewAppendVerificationNoteCommandHandler(uowFactory ports.UnitOfWorkFactory) AppendVerificationNoteCommandHandler {
	return AppendVerificationNoteCommandHandler{uowFactory: uowFactory}
}

func (h AppendVerificationNoteCommandHandler) Handle(ctx context.Context, command AppendVerificationNoteCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.VerificationRepository()
	verification, err := repo.GetByIntake(ctx, command.IntakeID())
	if err != nil {
		return err
	}

	if err = verification.AppendNote(command.Note()); err != nil {
		return err
	}
	if err = repo.UpdateNotes(ctx, verification); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
