package jobs

import (
	"context"
	"time"

	"custody/internal/core/application/usecases/commands"
	"custody/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockRepairer struct{ mock.Mock }

func (m *MockRepairer) Handle(ctx context.Context, command commands.RepairPendingMovementsCommand) (commands.RepairReport, error) {
	args := m.Called(ctx, command)
	return args.Get(0).(commands.RepairReport), args.Error(1)
}

type MockAgingReader struct{ mock.Mock }

func (m *MockAgingReader) Handle(ctx context.Context, query queries.GetInventoryAgingQuery) (*queries.GetInventoryAgingQueryResponse, error) {
	args := m.Called(ctx, query)
	response, _ := args.Get(0).(*queries.GetInventoryAgingQueryResponse)
	return response, args.Error(1)
}

type MockRunLock struct {
	mock.Mock
	released int
}

func (m *MockRunLock) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	args := m.Called(ctx, key, ttl)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.released++
		return nil
	}, nil
}
