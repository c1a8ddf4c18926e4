package jobs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"custody/internal/adapters/out/report"
	"custody/internal/core/application/usecases/queries"
	"custody/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const agingReportLockKey = "custody:jobs:aging_report"

type agingReader interface {
	Handle(ctx context.Context, query queries.GetInventoryAgingQuery) (*queries.GetInventoryAgingQueryResponse, error)
}

// AgingReportJob writes a daily aging workbook into a directory.
type AgingReportJob struct {
	handler  agingReader
	lock     RunLock
	schedule string
	dir      string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewAgingReportJob(handler agingReader, lock RunLock, schedule, dir string, logger *zap.Logger) *AgingReportJob {
	return &AgingReportJob{
		handler:  handler,
		lock:     lock,
		schedule: schedule,
		dir:      dir,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With(zap.String("component", "aging_report_job")),
	}
}

func (j *AgingReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(context.Background()); err != nil {
			j.logger.Error("aging report failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("aging report job started", zap.String("schedule", j.schedule), zap.String("dir", j.dir))
	return nil
}

func (j *AgingReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("aging report job stopped")
}

// RunOnce writes one workbook and returns its path, or "" when another
// instance holds the lock.
func (j *AgingReportJob) RunOnce(ctx context.Context) (string, error) {
	release, err := j.lock.Obtain(ctx, agingReportLockKey, 5*time.Minute)
	if errors.Is(err, errLockHeld) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer func() {
		_ = release(context.Background())
	}()

	query, err := queries.NewGetInventoryAgingQuery(kernel.UnknownLocation)
	if err != nil {
		return "", err
	}
	result, err := j.handler.Handle(ctx, query)
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}
	filename := filepath.Join(j.dir, fmt.Sprintf("aging-%s.xlsx", result.GeneratedAt.Format("20060102")))
	if err = report.SaveAgingReport(filename, result); err != nil {
		return "", err
	}

	j.logger.Info("aging report written", zap.String("file", filename), zap.Int("items", len(result.Items)))
	return filename, nil
}
