// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the warehouse service.
//
// # Available Jobs
//
// 1. PackageConsistencyJob - Runs every 30 seconds to raise shipment package
// totals that lag behind the loaded high-water mark
// 2. BackorderReportJob - Runs every 15 minutes to log unfulfilled backorder
// counts per warehouse
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, backorderSummaryHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The consistency job logs failures and retries on the next tick; a sweep
//     that raises nothing is silent
//   - The report job logs failures and otherwise emits one line per warehouse
//     with pending backorders
//   - Failed job starts will stop any already running jobs
package jobs
