package commands

import (
	"errors"
	"strings"

	"custody/internal/core/domain/model/kernel"
	"custody/internal/pkg/errs"
	"custody/internal/pkg/guard"
)

var ErrAppendVerificationNoteCommandIsNotConstructed = errors.New(
	"AppendVerificationNoteCommand must be created via NewAppendVerificationNoteCommand constructor",
)

type AppendVerificationNoteCommand struct {
	intakeID kernel.UUID
	note     string
	guard    guard.ConstructorGuard
}

func NewAppendVerificationNoteCommand(intakeID kernel.UUID, note string) (AppendVerificationNoteCommand, error) {
	if err := intakeID.Validate(); err != nil {
		return AppendVerificationNoteCommand{}, errs.NewValueIsRequiredErrorWithCause("intake id", err)
	}
	if strings.TrimSpace(note) == "" {
		return AppendVerificationNoteCommand{}, errs.NewValueIsRequiredError("note")
	}
	return AppendVerificationNoteCommand{intakeID: intakeID, note: note, guard: guard.NewConstructorGuard()}, nil
}

func (c AppendVerificationNoteCommand) Validate() error {
	return c.guard.Validate(ErrAppendVerificationNoteCommandIsNotConstructed)
}

func (c AppendVerificationNoteCommand) IntakeID() kernel.UUID { return c.intakeID }
func (c AppendVerificationNoteCommand) Note() string          { return c.note }
