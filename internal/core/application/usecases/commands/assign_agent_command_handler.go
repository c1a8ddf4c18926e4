package commands

import (
	"context"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
)

type AssignAgentCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      kernel.Clock
}

func NewAssignAgentCommandHandler(uowFactory ports.UnitOfWorkFactory, clock kernel.Clock) AssignAgentCommandHandler {
	return AssignAgentCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h AssignAgentCommandHandler) Handle(ctx context.Context, command AssignAgentCommand) error {
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

	repo := uow.IntakeRepository()
	record, err := repo.Get(ctx, command.IntakeID())
	if err != nil {
		return err
	}

	if err = record.AssignAgent(command.AgentID(), h.clock.Now()); err != nil {
		return observe("assign_agent", err)
	}

	if err = repo.Update(ctx, record); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
