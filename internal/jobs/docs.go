// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic maintenance the order lifecycle needs.
//
// # Available Jobs
//
// 1. PendingOrderExpiryJob - Runs every minute to cancel pending orders the
// restaurant never acted on.
// 2. AbandonedCartCleanupJob - Runs every hour to purge carts that have been
// untouched longer than the configured retention.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireHandler, cartRepository, maxPendingAge, cartRetention, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and retried on the next tick; a broken tick never
// stops the schedule.
package jobs
