// Package jobs provides scheduled background tasks for the fulfillment
// pipeline.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the allocation stages that do not wait for an API call.
//
// # Available Jobs
//
// 1. AllocationJob - Runs every five seconds to allocate stock for newly
// submitted orders
// 2. AllocationRetryJob - Runs every minute to re-run allocation for orders
// whose previous pass received no stock
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(uowFactory, allocateHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Both jobs skip orders that changed status between the scan and the
// allocation run; everything else is logged and the batch continues.
// Failed job starts stop any already running jobs.
package jobs
