package jobs

import (
	"context"
	"errors"
	"time"

	"custody/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const ledgerRepairLockKey = "custody:jobs:ledger_repair"

type pendingMovementRepairer interface {
	Handle(ctx context.Context, command commands.RepairPendingMovementsCommand) (commands.RepairReport, error)
}

// LedgerRepairJob resolves pending movement markers left by interrupted
// writes. Only one instance runs a pass at a time.
type LedgerRepairJob struct {
	handler  pendingMovementRepairer
	lock     RunLock
	schedule string
	minAge   time.Duration
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewLedgerRepairJob(
	handler pendingMovementRepairer,
	lock RunLock,
	schedule string,
	minAge time.Duration,
	logger *zap.Logger,
) *LedgerRepairJob {
	return &LedgerRepairJob{
		handler:  handler,
		lock:     lock,
		schedule: schedule,
		minAge:   minAge,
		timeout:  time.Minute,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(zap.String("component", "ledger_repair_job")),
	}
}

func (j *LedgerRepairJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("ledger repair failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("ledger repair job started", zap.String("schedule", j.schedule))
	return nil
}

func (j *LedgerRepairJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("ledger repair job stopped")
}

// RunOnce performs one repair pass. A pass skipped because another instance
// holds the lock is not an error.
func (j *LedgerRepairJob) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	release, err := j.lock.Obtain(ctx, ledgerRepairLockKey, j.timeout)
	if errors.Is(err, errLockHeld) {
		j.logger.Debug("ledger repair skipped, another instance is running it")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := release(context.Background()); releaseErr != nil {
			j.logger.Warn("failed to release ledger repair lock", zap.Error(releaseErr))
		}
	}()

	cmd, err := commands.NewRepairPendingMovementsCommand(j.minAge)
	if err != nil {
		return err
	}
	report, err := j.handler.Handle(ctx, cmd)
	if report.Completed+report.RolledBack+report.Failed > 0 {
		j.logger.Info("ledger repair pass finished",
			zap.Int("completed", report.Completed),
			zap.Int("rolled_back", report.RolledBack),
			zap.Int("failed", report.Failed))
	}
	return err
}
