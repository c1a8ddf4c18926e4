// Package postgres implements the unit of work on GORM. Repositories handed
// out by a unit of work share its transaction and register every aggregate
// they write; once Commit succeeds the aggregates' domain events are
// published and cleared.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.IntakeRepository().Update(ctx, record); err != nil {
//	    return err
//	}
//	if err := uow.InventoryRepository().Add(ctx, item); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op, so the deferred call above
// is always safe.
package postgres

import (
	"context"

	"custody/internal/adapters/out/postgres/dberrs"
	"custody/internal/adapters/out/postgres/intakerepo"
	"custody/internal/adapters/out/postgres/inventoryrepo"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
	"custody/internal/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances bound to one database
// and one event publisher.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewGormUnitOfWorkFactory creates the factory. A nil publisher drops events.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *zap.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With(zap.String("component", "unit_of_work")),
	}
}

// Create produces a fresh unit of work with its own transaction state and
// aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db        *gorm.DB
	tx        *gorm.DB
	publisher ports.EventPublisher
	logger    *zap.Logger

	trackedAggregates []kernel.Aggregate
}

// Begin opens the transaction. Calling it twice does not nest.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return dberrs.Classify("transaction begin", err)
	}
	return nil
}

// Commit makes the changes durable and then publishes the tracked
// aggregates' events. A publish failure is logged and counted but never
// reported to the caller: the state change already happened.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = nil
		return dberrs.Classify("transaction commit", err)
	}

	uow.publishEvents(ctx)
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates. It is a
// no-op when no transaction is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return nil
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = nil
	return err
}

func (uow *GormUnitOfWork) IntakeRepository() ports.IntakeRepository {
	return intakerepo.NewGormIntakeRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) VerificationRepository() ports.VerificationRepository {
	return intakerepo.NewGormVerificationRepository(uow.conn())
}

func (uow *GormUnitOfWork) QCDecisionRepository() ports.QCDecisionRepository {
	return intakerepo.NewGormQCDecisionRepository(uow.conn())
}

func (uow *GormUnitOfWork) InventoryRepository() ports.InventoryRepository {
	return inventoryrepo.NewGormInventoryRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate written in this unit of work.
// Repositories call it after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(aggregate kernel.Aggregate) {
	for _, tracked := range uow.trackedAggregates {
		if tracked == aggregate {
			return
		}
	}
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publishEvents(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = nil

	var events []kernel.DomainEvent
	for _, aggregate := range tracked {
		events = append(events, aggregate.DomainEvents()...)
		aggregate.ClearDomainEvents()
	}
	if len(events) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, events...); err != nil {
		metrics.EventsPublishFailedTotal.Add(float64(len(events)))
		uow.logger.Error("failed to publish domain events",
			zap.Int("events", len(events)),
			zap.Error(err))
	}
}
