// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order pipeline.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every 5 seconds to deliver pending outbox notifications
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchNotificationsHandler, logger)
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
// The dispatch job uses the cron expression "*/5 * * * * *" which means it
// runs every 5 seconds. Messages are written to the outbox in the same
// transaction as the order change, so frequent draining keeps notification
// latency low without risking lost messages.
//
// # Error Handling
//
// Per-message delivery failures are recorded on the message itself and
// retried on later runs; the job only logs errors that stop a whole batch.
package jobs
