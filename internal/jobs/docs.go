// Package jobs runs the scheduled background work of the custody service on
// github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
//  1. LedgerRepairJob resolves pending stock movement markers left by
//     interrupted writes.
//  2. AgingReportJob writes the inventory aging workbook.
//
// Both jobs take a RunLock so that, with several service instances, one pass
// runs at a time. RedisRunLock backs it with github.com/bsm/redislock.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(repairJob, agingJob)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
