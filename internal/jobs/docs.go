// Package jobs provides scheduled background tasks for the work order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// 1. ReconciliationJob - checks inventory ledger conservation (no negative
// counters, reserved quantities equal to the live reservations) and logs a
// warning per discrepancy
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.ReconcileSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation schedule defaults to "0 */5 * * * *" (every five
// minutes) and is configured with RECONCILE_SCHEDULE.
//
// # Error Handling
//
// A failed pass is logged and the job keeps its schedule. A schedule that
// does not parse fails StartAll.
package jobs
