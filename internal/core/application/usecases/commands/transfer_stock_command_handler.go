package commands

import (
	"context"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
)

// TransferStockCommandHandler moves an in-stock item. The in_stock check in
// the domain is the only guard: of two racing transfers the second one is
// rejected, either by that check or by the repository's version check.
type TransferStockCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      kernel.Clock
}

func NewTransferStockCommandHandler(uowFactory ports.UnitOfWorkFactory, clock kernel.Clock) TransferStockCommandHandler {
	return TransferStockCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h TransferStockCommandHandler) Handle(ctx context.Context, command TransferStockCommand) error {
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

	items := uow.InventoryRepository()
	item, err := items.Get(ctx, command.ItemID())
	if err != nil {
		return err
	}

	err = item.Transfer(command.To(), command.ToShowroomID(), command.Reason(), command.PerformedBy(), h.clock.Now())
	if err != nil {
		return observe("transfer_stock", err)
	}

	if err = items.Update(ctx, item); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
