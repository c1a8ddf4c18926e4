package commands

import (
	"errors"
	"fmt"

	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrStockOutCommandIsNotConstructed = errors.New(
	"StockOutCommand must be created via NewStockOutCommand constructor",
)

// StockOutCommand takes a unit out of custody as sold or returned. The reason
// is free text and does not affect the outcome.
type StockOutCommand struct {
	itemID      kernel.UUID
	outcome     inventory.Status
	reason      string
	performedBy string
	guard       guard.ConstructorGuard
}

func NewStockOutCommand(itemID kernel.UUID, outcome inventory.Status, reason, performedBy string) (StockOutCommand, error) {
	if err := itemID.Validate(); err != nil {
		return StockOutCommand{}, errs.NewValueIsRequiredErrorWithCause("inventory item id", err)
	}
	if !outcome.IsStockOutOutcome() {
		return StockOutCommand{}, errs.NewValueIsInvalidErrorWithCause("outcome",
			fmt.Errorf("%s is not sold or returned", outcome))
	}
	return StockOutCommand{
		itemID:      itemID,
		outcome:     outcome,
		reason:      reason,
		performedBy: performedBy,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c StockOutCommand) Validate() error {
	return c.guard.Validate(ErrStockOutCommandIsNotConstructed)
}

func (c StockOutCommand) ItemID() kernel.UUID       { return c.itemID }
func (c StockOutCommand) Outcome() inventory.Status { return c.outcome }
func (c StockOutCommand) Reason() string            { return c.reason }
func (c StockOutCommand) PerformedBy() string       { return c.performedBy }
