package commands

import (
	"errors"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrSubmitVerificationCommandIsNotConstructed = errors.New(
	"SubmitVerificationCommand must be created via NewSubmitVerificationCommand constructor",
)

// SubmitVerificationCommand carries the on-site capture of a pickup agent.
// Photo count, ID proof and serial number are validated by the domain before
// anything is written.
type SubmitVerificationCommand struct {
	intakeID kernel.UUID
	capture  intake.Capture
	guard    guard.ConstructorGuard
}

func NewSubmitVerificationCommand(intakeID kernel.UUID, capture intake.Capture) (SubmitVerificationCommand, error) {
	if err := intakeID.Validate(); err != nil {
		return SubmitVerificationCommand{}, errs.NewValueIsRequiredErrorWithCause("intake id", err)
	}
	return SubmitVerificationCommand{intakeID: intakeID, capture: capture, guard: guard.NewConstructorGuard()}, nil
}

func (c SubmitVerificationCommand) Validate() error {
	return c.guard.Validate(ErrSubmitVerificationCommandIsNotConstructed)
}

func (c SubmitVerificationCommand) IntakeID() kernel.UUID   { return c.intakeID }
func (c SubmitVerificationCommand) Capture() intake.Capture { return c.capture }
