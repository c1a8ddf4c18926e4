package commands

import (
	"errors"
	"time"

	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrRepairPendingMovementsCommandIsNotConstructed = errors.New(
	"RepairPendingMovementsCommand must be created via NewRepairPendingMovementsCommand constructor",
)

// RepairPendingMovementsCommand resolves movements left pending by an
// interrupted ledger write. Only markers older than minAge are touched so
// that writes still in flight are left alone.
type RepairPendingMovementsCommand struct {
	minAge time.Duration
	guard  guard.ConstructorGuard
}

func NewRepairPendingMovementsCommand(minAge time.Duration) (RepairPendingMovementsCommand, error) {
	if minAge < 0 {
		return RepairPendingMovementsCommand{}, errs.NewValueIsOutOfRangeError("min age", minAge, 0, "unbounded")
	}
	return RepairPendingMovementsCommand{minAge: minAge, guard: guard.NewConstructorGuard()}, nil
}

func (c RepairPendingMovementsCommand) Validate() error {
	return c.guard.Validate(ErrRepairPendingMovementsCommandIsNotConstructed)
}

func (c RepairPendingMovementsCommand) MinAge() time.Duration { return c.minAge }
