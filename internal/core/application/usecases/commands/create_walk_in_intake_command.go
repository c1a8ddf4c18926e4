package commands

import (
	"errors"
	"strings"

	"custody/internal/core/application/orderids"
	"custody/internal/core/domain/model/intake"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrCreateWalkInIntakeCommandIsNotConstructed = errors.New(
	"CreateWalkInIntakeCommand must be created via NewCreateWalkInIntakeCommand constructor",
)

// CreateWalkInIntakeCommand registers a device handed in at a showroom. The
// capture and agreed price are taken at the counter, so the record starts in
// pending_qc.
type CreateWalkInIntakeCommand struct {
	location orderids.Request
	details  intake.Details
	capture  intake.Capture
	guard    guard.ConstructorGuard
}

func NewCreateWalkInIntakeCommand(
	location orderids.Request,
	details intake.Details,
	capture intake.Capture,
) (CreateWalkInIntakeCommand, error) {
	var errList []error
	if strings.TrimSpace(location.Category) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("category"))
	}
	if details.Price <= 0 {
		errList = append(errList, errs.NewValueIsRequiredError("agreed price"))
	}
	if len(capture.PhotoRefs) < intake.MinDevicePhotos {
		errList = append(errList, errs.NewValueIsOutOfRangeError("device photos", len(capture.PhotoRefs), intake.MinDevicePhotos, intake.MaxDevicePhotos))
	}
	if strings.TrimSpace(capture.IDProofRef) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("id proof"))
	}
	if err := errors.Join(errList...); err != nil {
		return CreateWalkInIntakeCommand{}, err
	}

	return CreateWalkInIntakeCommand{
		location: location,
		details:  details,
		capture:  capture,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateWalkInIntakeCommand) Validate() error {
	return c.guard.Validate(ErrCreateWalkInIntakeCommandIsNotConstructed)
}

func (c CreateWalkInIntakeCommand) Location() orderids.Request { return c.location }
func (c CreateWalkInIntakeCommand) Details() intake.Details    { return c.details }
func (c CreateWalkInIntakeCommand) Capture() intake.Capture    { return c.capture }
