// Package jobs provides scheduled background tasks for the order service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// PartnerAssignmentJob retries delivery partner matching for orders that were
// accepted while nobody was in range. It is opt-in: JobManager registers it
// only when a schedule is configured (PARTNER_RETRY_SCHEDULE).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(assignHandler, "@every 30s", commands.DefaultAssignBatchSize, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed batch is logged and the next tick runs normally. Failing to start
// any job stops the ones already running.
package jobs
