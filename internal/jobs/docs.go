// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the booking dispatch service.
//
// # Available Jobs
//
// 1. RebroadcastJob - Runs every 15 seconds to re-offer pending bookings to nearby online providers
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(rebroadcastHandler, logger)
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
// The re-broadcast job uses the cron expression "*/15 * * * * *", so it runs
// every fifteen seconds. Providers who connect between runs can always pull
// claimable work through the nearby bookings endpoint instead of waiting.
//
// # Error Handling
//
// - A failed re-broadcast run is logged and retried on the next tick
// - Per-booking delivery failures never abort the run; the remaining bookings are still offered
// - A failed job start stops any already running jobs
package jobs
