package commands

import (
	"errors"
	"strings"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrAssignAgentCommandIsNotConstructed = errors.New(
	"AssignAgentCommand must be created via NewAssignAgentCommand constructor",
)

// AssignAgentCommand assigns (or reassigns) the field agent of a pickup.
type AssignAgentCommand struct {
	intakeID kernel.UUID
	agentID  string
	guard    guard.ConstructorGuard
}

func NewAssignAgentCommand(intakeID kernel.UUID, agentID string) (AssignAgentCommand, error) {
	if err := intakeID.Validate(); err != nil {
		return AssignAgentCommand{}, errs.NewValueIsRequiredErrorWithCause("intake id", err)
	}
	if strings.TrimSpace(agentID) == "" {
		return AssignAgentCommand{}, errs.NewValueIsRequiredError("agent id")
	}
	return AssignAgentCommand{intakeID: intakeID, agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignAgentCommand) Validate() error {
	return c.guard.Validate(ErrAssignAgentCommandIsNotConstructed)
}

func (c AssignAgentCommand) IntakeID() kernel.UUID { return c.intakeID }
func (c AssignAgentCommand) AgentID() string       { return c.agentID }
