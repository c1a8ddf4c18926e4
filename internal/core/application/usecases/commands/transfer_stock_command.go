package commands

import (
	"errors"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrTransferStockCommandIsNotConstructed = errors.New(
	"TransferStockCommand must be created via NewTransferStockCommand constructor",
)

type TransferStockCommand struct {
	itemID       kernel.UUID
	to           kernel.Location
	toShowroomID string
	reason       string
	performedBy  string
	guard        guard.ConstructorGuard
}

func NewTransferStockCommand(
	itemID kernel.UUID,
	to kernel.Location,
	toShowroomID, reason, performedBy string,
) (TransferStockCommand, error) {
	if err := itemID.Validate(); err != nil {
		return TransferStockCommand{}, errs.NewValueIsRequiredErrorWithCause("inventory item id", err)
	}
	if err := to.Validate(); err != nil {
		return TransferStockCommand{}, err
	}
	return TransferStockCommand{
		itemID:       itemID,
		to:           to,
		toShowroomID: toShowroomID,
		reason:       reason,
		performedBy:  performedBy,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c TransferStockCommand) Validate() error {
	return c.guard.Validate(ErrTransferStockCommandIsNotConstructed)
}

func (c TransferStockCommand) ItemID() kernel.UUID  { return c.itemID }
func (c TransferStockCommand) To() kernel.Location  { return c.to }
func (c TransferStockCommand) ToShowroomID() string { return c.toShowroomID }
func (c TransferStockCommand) Reason() string       { return c.reason }
func (c TransferStockCommand) PerformedBy() string  { return c.performedBy }
