package commands

import (
	"context"
	"errors"
	"fmt"

	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/metrics"
)

// RepairReport counts how pending movements were resolved.
type RepairReport struct {
	Completed  int
	RolledBack int
	Failed     int
}

// RepairPendingMovementsCommandHandler completes a pending movement when the
// item snapshot already reflects it (the snapshot's last sequence reached the
// movement) and deletes it otherwise. Each movement is resolved in its own
// transaction.
type RepairPendingMovementsCommandHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      kernel.Clock
}

func NewRepairPendingMovementsCommandHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock kernel.Clock,
) RepairPendingMovementsCommandHandler {
	return RepairPendingMovementsCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h RepairPendingMovementsCommandHandler) Handle(
	ctx context.Context,
	command RepairPendingMovementsCommand,
) (RepairReport, error) {
	var report RepairReport
	if err := command.Validate(); err != nil {
		return report, err
	}

	pending, err := h.listPending(ctx, command)
	if err != nil {
		return report, err
	}

	var errList []error
	for _, m := range pending {
		completed, repairErr := h.repair(ctx, m)
		switch {
		case repairErr != nil:
			report.Failed++
			errList = append(errList, fmt.Errorf("repair movement %s: %w", m.ID(), repairErr))
		case completed:
			report.Completed++
			metrics.LedgerRepairsTotal.WithLabelValues("completed").Inc()
		default:
			report.RolledBack++
			metrics.LedgerRepairsTotal.WithLabelValues("rolled_back").Inc()
		}
	}
	return report, errors.Join(errList...)
}

func (h RepairPendingMovementsCommandHandler) listPending(
	ctx context.Context,
	command RepairPendingMovementsCommand,
) ([]*inventory.Movement, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.InventoryRepository().ListPendingMovements(ctx, h.clock.Now().Add(-command.MinAge()))
}

func (h RepairPendingMovementsCommandHandler) repair(ctx context.Context, m *inventory.Movement) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	items := uow.InventoryRepository()
	item, err := items.Get(ctx, m.ItemID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return false, err
	}

	reflected := item != nil && item.LastSeq() >= m.Seq()
	if reflected {
		err = items.CompletePendingMovement(ctx, m.ID())
	} else {
		err = items.DeletePendingMovement(ctx, m.ID())
	}
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return reflected, nil
}
