package commands

import (
	"context"

	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
)

type StockOutCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      kernel.Clock
}

func NewStockOutCommandHandler(uowFactory ports.UnitOfWorkFactory, clock kernel.Clock) StockOutCommandHandler {
	return StockOutCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle returns the status the item ended in: sold or returned.
func (h StockOutCommandHandler) Handle(ctx context.Context, command StockOutCommand) (inventory.Status, error) {
	if err := command.Validate(); err != nil {
		return inventory.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return inventory.Unknown, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items := uow.InventoryRepository()
	item, err := items.Get(ctx, command.ItemID())
	if err != nil {
		return inventory.Unknown, err
	}

	if err = item.StockOut(command.Outcome(), command.Reason(), command.PerformedBy(), h.clock.Now()); err != nil {
		return inventory.Unknown, observe("stock_out", err)
	}

	if err = items.Update(ctx, item); err != nil {
		return inventory.Unknown, err
	}
	if err = uow.Commit(ctx); err != nil {
		return inventory.Unknown, err
	}
	return item.Status(), nil
}
