package commands_test

import (
	"context"
	"time"

	"custody/internal/core/application/orderids"
	"custody/internal/core/domain/model/intake"
	"custody/internal/core/domain/model/inventory"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/model/orderid"
	"custody/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var now = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

var clock = kernel.FixedClock(now)

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	return m.Called().Get(0).(ports.UnitOfWork)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) IntakeRepository() ports.IntakeRepository {
	return m.Called().Get(0).(ports.IntakeRepository)
}

func (m *MockUoW) VerificationRepository() ports.VerificationRepository {
	return m.Called().Get(0).(ports.VerificationRepository)
}

func (m *MockUoW) QCDecisionRepository() ports.QCDecisionRepository {
	return m.Called().Get(0).(ports.QCDecisionRepository)
}

func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	return m.Called().Get(0).(ports.InventoryRepository)
}

type MockIntakeRepository struct{ mock.Mock }

func (m *MockIntakeRepository) Add(ctx context.Context, r *intake.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockIntakeRepository) Update(ctx context.Context, r *intake.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockIntakeRepository) Get(ctx context.Context, id kernel.UUID) (*intake.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.Record), args.Error(1)
}

type MockVerificationRepository struct{ mock.Mock }

func (m *MockVerificationRepository) Add(ctx context.Context, v *intake.Verification) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVerificationRepository) UpdateNotes(ctx context.Context, v *intake.Verification) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVerificationRepository) GetByIntake(ctx context.Context, id kernel.UUID) (*intake.Verification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.Verification), args.Error(1)
}

type MockQCDecisionRepository struct{ mock.Mock }

func (m *MockQCDecisionRepository) Add(ctx context.Context, d *intake.QCDecision) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockQCDecisionRepository) GetByIntake(ctx context.Context, id kernel.UUID) (*intake.QCDecision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.QCDecision), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockInventoryRepository) ExistsForIntake(ctx context.Context, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryRepository) ListInStock(ctx context.Context) ([]*inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Item), args.Error(1)
}

func (m *MockInventoryRepository) Movements(ctx context.Context, id kernel.UUID) ([]*inventory.Movement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Movement), args.Error(1)
}

func (m *MockInventoryRepository) ListPendingMovements(ctx context.Context, olderThan time.Time) ([]*inventory.Movement, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Movement), args.Error(1)
}

func (m *MockInventoryRepository) CompletePendingMovement(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockInventoryRepository) DeletePendingMovement(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockOrderIDGenerator struct{ mock.Mock }

func (m *MockOrderIDGenerator) Generate(ctx context.Context, req orderids.Request) (orderid.OrderID, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(orderid.OrderID), args.Error(1)
}

// fixture is a unit of work that always begins, rolls back on exit and
// hands out mock repositories. Commit expectations are set per test.
type fixture struct {
	factory      *MockUoWFactory
	uow          *MockUoW
	intakes      *MockIntakeRepository
	verification *MockVerificationRepository
	decisions    *MockQCDecisionRepository
	items        *MockInventoryRepository
}

func newFixture() *fixture {
	f := &fixture{
		factory:      new(MockUoWFactory),
		uow:          new(MockUoW),
		intakes:      new(MockIntakeRepository),
		verification: new(MockVerificationRepository),
		decisions:    new(MockQCDecisionRepository),
		items:        new(MockInventoryRepository),
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.uow.On("Rollback", mock.Anything).Return(nil)
	f.uow.On("IntakeRepository").Return(f.intakes)
	f.uow.On("VerificationRepository").Return(f.verification)
	f.uow.On("QCDecisionRepository").Return(f.decisions)
	f.uow.On("InventoryRepository").Return(f.items)
	return f
}
