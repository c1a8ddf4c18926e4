package jobs

import (
	"fmt"
)

type job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	ledgerRepairJob *LedgerRepairJob
	agingReportJob  *AgingReportJob
}

func NewJobManager(ledgerRepairJob *LedgerRepairJob, agingReportJob *AgingReportJob) *JobManager {
	return &JobManager{
		ledgerRepairJob: ledgerRepairJob,
		agingReportJob:  agingReportJob,
	}
}

// StartAll starts every job. If one fails to start, the ones already
// running are stopped.
func (jm *JobManager) StartAll() error {
	started := make([]job, 0, 2)
	for _, j := range []struct {
		name string
		job  job
	}{
		{"ledger repair", jm.ledgerRepairJob},
		{"aging report", jm.agingReportJob},
	} {
		if err := j.job.Start(); err != nil {
			for _, s := range started {
				s.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		started = append(started, j.job)
	}
	return nil
}

// StopAll stops all jobs and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.ledgerRepairJob.Stop()
	jm.agingReportJob.Stop()
}
