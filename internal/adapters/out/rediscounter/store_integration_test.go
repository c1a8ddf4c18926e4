package rediscounter_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"custody/internal/adapters/out/rediscounter"
	"custody/internal/core/application/sequence"
	"custody/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type CounterStoreIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	store     *rediscounter.CounterStore
}

func TestCounterStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CounterStoreIntegrationTestSuite))
}

func (suite *CounterStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())
	suite.store = rediscounter.NewCounterStore(suite.client, "")
}

func (suite *CounterStoreIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CounterStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushDB(context.Background()).Err())
}

func (suite *CounterStoreIntegrationTestSuite) TestOperations() {
	ctx := context.Background()

	_, found, err := suite.store.Load(ctx)
	suite.Require().NoError(err)
	suite.False(found)
	suite.Require().ErrorIs(suite.store.CompareAndSwap(ctx, 1000, 1001), errs.ErrContention)

	next, err := suite.store.IncrementInTransaction(ctx, sequence.InitialCount)
	suite.Require().NoError(err)
	suite.Equal(int64(1001), next)

	suite.Require().NoError(suite.store.CompareAndSwap(ctx, 1001, 1002))
	suite.Require().ErrorIs(suite.store.CompareAndSwap(ctx, 1001, 1002), errs.ErrContention)

	suite.Require().NoError(suite.store.Overwrite(ctx, 3000))
	count, found, err := suite.store.Load(ctx)
	suite.Require().NoError(err)
	suite.True(found)
	suite.Equal(int64(3000), count)
}

func (suite *CounterStoreIntegrationTestSuite) TestConcurrentAllocatorsNeverShareAValue() {
	ctx := context.Background()
	const callers = 30

	// Jittered, generous retries: this checks the store's atomicity, not the
	// allocator's retry budget.
	jittered := func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 2 * time.Millisecond
		b.RandomizationFactor = 0.5
		b.MaxInterval = 50 * time.Millisecond
		b.MaxElapsedTime = 0
		b.Reset()
		return backoff.WithMaxRetries(b, 50)
	}

	results := make(chan int64, callers)
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allocator, err := sequence.NewAllocator(rediscounter.NewCounterStore(suite.client, ""), zap.NewNop(),
				sequence.WithBackOff(jittered))
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
		seen[v] = true
	}
	suite.Len(seen, callers)
}
