// Package jobs provides scheduled background tasks for the bakery platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for delivery allocation and the
// loyalty ledger.
//
// # Available Jobs
//
// 1. DeliveryAssignmentJob - Runs every second to assign pending unassigned orders to available delivery agents
// 2. PointsExpiryJob - Runs hourly to expire earned loyalty points that have passed their expiry timestamp
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(assignPendingHandler, expirePointsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The assignment job uses the cron expression "* * * * * *" (every second)
// so new orders are picked up with minimal delay. The expiry job uses
// "0 0 * * * *" (top of every hour); expiry timestamps are coarse enough
// that a tighter schedule buys nothing.
//
// # Error Handling
//
// - Assignment job ignores the expected empty-queue scenario (no pending orders)
// - Expiry job logs all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
