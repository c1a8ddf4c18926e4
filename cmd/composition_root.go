package cmd

import (
	"errors"
	"fmt"

	httpadapter "custody/internal/adapters/in/http"
	"custody/internal/adapters/out/broker"
	"custody/internal/adapters/out/postgres"
	"custody/internal/adapters/out/postgres/counterrepo"
	"custody/internal/adapters/out/postgres/inventoryrepo"
	"custody/internal/adapters/out/rediscounter"
	"custody/internal/core/application/orderids"
	"custody/internal/core/application/sequence"
	"custody/internal/core/application/usecases/commands"
	"custody/internal/core/application/usecases/queries"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/domain/services"
	"custody/internal/core/ports"
	"custody/internal/jobs"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	clock      kernel.Clock
	redis      *redis.Client
	publisher  *broker.Publisher
	uowFactory *postgres.GormUnitOfWorkFactory
	generator  *orderids.Generator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config: config,
		gormDB: gormDB,
		logger: logger,
		clock:  kernel.SystemClock{},
	}

	if config.RedisAddr != "" {
		c.redis = redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
	}

	var publisher ports.EventPublisher
	if len(config.KafkaBrokers) > 0 {
		c.publisher = broker.NewPublisher(config.KafkaBrokers, config.KafkaLedgerTopic, logger)
		publisher = c.publisher
	} else {
		logger.Warn("KAFKA_BROKERS is empty, domain events will not be published")
	}
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, publisher, logger)

	allocator, err := sequence.NewAllocator(c.sequenceStore(), logger)
	if err != nil {
		return nil, err
	}
	c.generator, err = orderids.NewGenerator(services.NewGeoCodeResolver(), allocator, logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) sequenceStore() ports.SequenceCounterStore {
	if c.config.SequenceBackend == SequenceBackendRedis {
		c.logger.Info("using redis sequence backend", zap.String("addr", c.config.RedisAddr))
		return rediscounter.NewCounterStore(c.redis, rediscounter.DefaultKey)
	}
	return counterrepo.NewGormCounterStore(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		CreatePickupIntake:     commands.NewCreatePickupIntakeCommandHandler(c.uowFactory, c.generator, c.clock),
		CreateWalkInIntake:     commands.NewCreateWalkInIntakeCommandHandler(c.uowFactory, c.generator, c.clock),
		AssignAgent:            commands.NewAssignAgentCommandHandler(c.uowFactory, c.clock),
		SubmitVerification:     commands.NewSubmitVerificationCommandHandler(c.uowFactory, c.clock),
		AppendVerificationNote: commands.NewAppendVerificationNoteCommandHandler(c.uowFactory),
		DecideQC:               commands.NewDecideQCCommandHandler(c.uowFactory, c.clock),
		TransferStock:          commands.NewTransferStockCommandHandler(c.uowFactory, c.clock),
		StockOut:               commands.NewStockOutCommandHandler(c.uowFactory, c.clock),
		GetInventoryAging:      c.CreateGetInventoryAgingQueryHandler(),
		GetItemHistory:         queries.NewGetItemHistoryQueryHandler(inventoryrepo.NewGormInventoryRepository(c.gormDB, nil)),
		PreviewOrderID:         queries.NewPreviewOrderIDQueryHandler(c.generator),
	}, c.logger)
}

func (c *CompositionRoot) CreateGetInventoryAgingQueryHandler() queries.GetInventoryAgingQueryHandler {
	return queries.NewGetInventoryAgingQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	var lock jobs.RunLock = jobs.LocalRunLock{}
	if c.redis != nil {
		lock = jobs.NewRedisRunLock(redislock.New(c.redis))
	}

	repairJob := jobs.NewLedgerRepairJob(
		commands.NewRepairPendingMovementsCommandHandler(c.uowFactory, c.clock),
		lock,
		c.config.RepairSchedule,
		c.config.RepairMinAge,
		c.logger,
	)
	agingJob := jobs.NewAgingReportJob(
		c.CreateGetInventoryAgingQueryHandler(),
		lock,
		c.config.AgingReportSchedule,
		c.config.AgingReportDir,
		c.logger,
	)
	return jobs.NewJobManager(repairJob, agingJob)
}

// Close releases the outbound connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close kafka writer: %w", err))
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close redis client: %w", err))
		}
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			errList = append(errList, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errList...)
}
