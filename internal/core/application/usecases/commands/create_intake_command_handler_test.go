package commands_test

import (
	"errors"
	"testing"

	"custody/internal/core/application/orderids"
	"custody/internal/core/application/usecases/commands"
	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/orderid"
	"custody/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreatePickupIntakeCommandHandler_Handle(t *testing.T) {
	location := orderids.Request{PostalCode: "641004", Category: "cameras"}

	t.Run("stores a pending record under a fresh order id", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		generator := new(MockOrderIDGenerator)
		generator.On("Generate", ctx, location).Return(issuedID(t), nil).Once()
		f.intakes.On("Add", ctx, mock.MatchedBy(func(r *intake.Record) bool {
			return r.Status() == intake.Pending && r.OrderID().String() == "TN37WTDSLR1001"
		})).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewCreatePickupIntakeCommand(location, details())
		require.NoError(t, err)

		created, err := commands.NewCreatePickupIntakeCommandHandler(f.factory, generator, clock).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "TN37WTDSLR1001", created.OrderID.String())
		require.NoError(t, created.IntakeID.Validate())
		f.intakes.AssertExpectations(t)
		f.uow.AssertExpectations(t)
	})

	t.Run("allocation failure opens no transaction", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		generator := new(MockOrderIDGenerator)
		exhausted := errs.NewContentionErrorAfterAttempts("sequence allocation", 7, nil)
		generator.On("Generate", ctx, location).Return(orderid.OrderID{}, exhausted).Once()

		cmd, err := commands.NewCreatePickupIntakeCommand(location, details())
		require.NoError(t, err)

		_, err = commands.NewCreatePickupIntakeCommandHandler(f.factory, generator, clock).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrContention)
		f.factory.AssertNotCalled(t, "Create")
	})

	t.Run("insert failure is not committed", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		generator := new(MockOrderIDGenerator)
		generator.On("Generate", ctx, location).Return(issuedID(t), nil).Once()
		f.intakes.On("Add", ctx, mock.Anything).Return(errors.New("disk full")).Once()

		cmd, err := commands.NewCreatePickupIntakeCommand(location, details())
		require.NoError(t, err)

		_, err = commands.NewCreatePickupIntakeCommandHandler(f.factory, generator, clock).Handle(ctx, cmd)

		require.Error(t, err)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		f.uow.AssertCalled(t, "Rollback", ctx)
	})

	t.Run("zero command is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := commands.NewCreatePickupIntakeCommandHandler(f.factory, new(MockOrderIDGenerator), clock).
			Handle(t.Context(), commands.CreatePickupIntakeCommand{})

		require.ErrorIs(t, err, commands.ErrCreatePickupIntakeCommandIsNotConstructed)
	})
}

func TestCreateWalkInIntakeCommandHandler_Handle(t *testing.T) {
	location := orderids.Request{PostalCode: "560001", Category: "phones", Brand: "Apple"}

	t.Run("stores record and verification together", func(t *testing.T) {
		ctx := t.Context()
		f := newFixture()
		generator := new(MockOrderIDGenerator)
		generator.On("Generate", ctx, location).Return(issuedID(t), nil).Once()

		var stored *intake.Record
		mock.InOrder(
			f.intakes.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
				stored = args.Get(1).(*intake.Record)
			}).Return(nil).Once(),
			f.verification.On("Add", ctx, mock.Anything).Return(nil).Once(),
			f.uow.On("Commit", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewCreateWalkInIntakeCommand(location, details(), capture())
		require.NoError(t, err)

		created, err := commands.NewCreateWalkInIntakeCommandHandler(f.factory, generator, clock).Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, intake.PendingQC, stored.Status())
		assert.True(t, stored.ID().IsEqual(created.IntakeID))
		f.verification.AssertExpectations(t)
	})

	t.Run("incomplete capture fails before allocation", func(t *testing.T) {
		c := capture()
		c.PhotoRefs = c.PhotoRefs[:2]
		c.IDProofRef = ""

		_, err := commands.NewCreateWalkInIntakeCommand(location, details(), c)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
