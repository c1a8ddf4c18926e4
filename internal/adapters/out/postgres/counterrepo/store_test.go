package counterrepo_test

import (
	"context"
	"sync"
	"testing"

	"custody/internal/adapters/out/postgres/counterrepo"
	"custody/internal/adapters/out/postgres/dbtest"
	"custody/internal/core/application/sequence"
	"custody/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestGormCounterStore(t *testing.T) {
	ctx := t.Context()
	store := counterrepo.NewGormCounterStore(dbtest.SQLite(t))

	_, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, found)

	next, err := store.IncrementInTransaction(ctx, sequence.InitialCount)
	require.NoError(t, err)
	assert.Equal(t, int64(1001), next)

	next, err = store.IncrementInTransaction(ctx, sequence.InitialCount)
	require.NoError(t, err)
	assert.Equal(t, int64(1002), next)

	require.NoError(t, store.CompareAndSwap(ctx, 1002, 1003))
	require.ErrorIs(t, store.CompareAndSwap(ctx, 1002, 1003), errs.ErrContention)

	count, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(1003), count)

	require.NoError(t, store.Overwrite(ctx, 5000))
	count, _, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), count)
}

func TestGormCounterStore_CompareAndSwapOnMissingCounter(t *testing.T) {
	store := counterrepo.NewGormCounterStore(dbtest.SQLite(t))

	require.ErrorIs(t, store.CompareAndSwap(t.Context(), 1000, 1001), errs.ErrContention)
}

func TestGormCounterStore_OverwriteCreates(t *testing.T) {
	ctx := t.Context()
	store := counterrepo.NewGormCounterStore(dbtest.SQLite(t))

	require.NoError(t, store.Overwrite(ctx, 1001))

	count, found, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(1001), count)
}

func TestGormCounterStore_SequentialAllocation(t *testing.T) {
	store := counterrepo.NewGormCounterStore(dbtest.SQLite(t))
	allocator, err := sequence.NewAllocator(store, zap.NewNop())
	require.NoError(t, err)

	prev := int64(sequence.InitialCount)
	for range 25 {
		next, nextErr := allocator.Next(t.Context())
		require.NoError(t, nextErr)
		assert.Equal(t, prev+1, next)
		prev = next
	}
}

type CounterStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *counterrepo.GormCounterStore
}

func TestCounterStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CounterStoreIntegrationTestSuite))
}

func (suite *CounterStoreIntegrationTestSuite) SetupSuite() {
	container, db, err := dbtest.Postgres(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
	suite.store = counterrepo.NewGormCounterStore(db)
}

func (suite *CounterStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CounterStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(dbtest.Truncate(suite.db))
}

func (suite *CounterStoreIntegrationTestSuite) TestFirstIssuedValueIs1001() {
	next, err := suite.store.IncrementInTransaction(context.Background(), sequence.InitialCount)

	suite.Require().NoError(err)
	suite.Equal(int64(1001), next)
}

func (suite *CounterStoreIntegrationTestSuite) TestConcurrentAllocatorsNeverShareAValue() {
	ctx := context.Background()
	suite.Require().NoError(suite.store.Overwrite(ctx, sequence.InitialCount))

	const callers = 40
	results := make(chan int64, callers)
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each caller is its own process as far as the counter is concerned.
			allocator, err := sequence.NewAllocator(counterrepo.NewGormCounterStore(suite.db), zap.NewNop())
			suite.NoError(err)
			next, err := allocator.Next(ctx)
			suite.NoError(err)
			results <- next
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, callers)
	for v := range results {
		suite.False(seen[v], "duplicate sequence %d", v)
		suite.Greater(v, int64(sequence.InitialCount))
		seen[v] = true
	}
	suite.Len(seen, callers)
}
