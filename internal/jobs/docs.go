// Package jobs provides scheduled background tasks for the baggage tracker.
//
// Jobs run on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// 1. SubscriberSweepJob - every 30 seconds removes websocket subscribers whose last pong is older than the idle timeout
// 2. StatusGaugeJob - every 15 seconds refreshes the baggage_items_by_status gauge
//
// # Usage
//
//	jobManager := jobs.NewJobManager(hub, cfg.WSIdleTimeout, statusCountsHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Failures are logged and the next tick tries again
// - Failed job starts will stop any already running jobs
package jobs
