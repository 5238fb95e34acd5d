// Package jobs provides scheduled background tasks for the ordering service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OrderExpiryJob cancels orders that are still Pending with payment Pending
// once they are older than ORDER_PENDING_TTL. Cancellations are recorded as
// made by "system" with the reason "payment timeout" and go through the same
// audited path as manual cancellations.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(orderService, cfg.OrderExpirySchedule, cfg.OrderPendingTTL, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six-field cron syntax with seconds. The default
// "0 * * * * *" runs at the start of every minute.
//
// # Error Handling
//
// Each order is expired in its own transaction; a failure on one order is
// logged and does not stop the rest of the batch.
package jobs
