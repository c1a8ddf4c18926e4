package commands

import (
	"errors"
	"strings"

	"custody/internal/core/application/orderids"
	"custody/internal/core/domain/model/intake"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrCreatePickupIntakeCommandIsNotConstructed = errors.New(
	"CreatePickupIntakeCommand must be created via NewCreatePickupIntakeCommand constructor",
)

// CreatePickupIntakeCommand registers a customer's pickup request.
type CreatePickupIntakeCommand struct {
	location orderids.Request
	details  intake.Details
	guard    guard.ConstructorGuard
}

func NewCreatePickupIntakeCommand(location orderids.Request, details intake.Details) (CreatePickupIntakeCommand, error) {
	var errList []error
	if strings.TrimSpace(location.Category) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("category"))
	}
	if strings.TrimSpace(details.ProductName) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("product name"))
	}
	if err := errors.Join(errList...); err != nil {
		return CreatePickupIntakeCommand{}, err
	}

	return CreatePickupIntakeCommand{
		location: location,
		details:  details,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePickupIntakeCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupIntakeCommandIsNotConstructed)
}

func (c CreatePickupIntakeCommand) Location() orderids.Request { return c.location }
func (c CreatePickupIntakeCommand) Details() intake.Details    { return c.details }
