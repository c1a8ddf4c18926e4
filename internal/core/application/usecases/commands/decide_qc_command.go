package commands

import (
	"errors"

	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrDecideQCCommandIsNotConstructed = errors.New(
	"DecideQCCommand must be created via NewDecideQCCommand constructor",
)

// DecideQCCommand routes a reviewed intake to its terminal state.
type DecideQCCommand struct {
	intakeID kernel.UUID
	input    intake.DecisionInput
	guard    guard.ConstructorGuard
}

func NewDecideQCCommand(intakeID kernel.UUID, input intake.DecisionInput) (DecideQCCommand, error) {
	if err := intakeID.Validate(); err != nil {
		return DecideQCCommand{}, errs.NewValueIsRequiredErrorWithCause("intake id", err)
	}
	if err := input.Decision.Validate(); err != nil {
		return DecideQCCommand{}, err
	}
	return DecideQCCommand{intakeID: intakeID, input: input, guard: guard.NewConstructorGuard()}, nil
}

func (c DecideQCCommand) Validate() error {
	return c.guard.Validate(ErrDecideQCCommandIsNotConstructed)
}

func (c DecideQCCommand) IntakeID() kernel.UUID       { return c.intakeID }
func (c DecideQCCommand) Input() intake.DecisionInput { return c.input }
