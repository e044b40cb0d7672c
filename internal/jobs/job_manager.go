package jobs

import (
	"fmt"
	"log/slog"

	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/commands"
	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	packageConsistencyJob *PackageConsistencyJob
	backorderReportJob    *BackorderReportJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes the handlers as dependencies to wire up the job execution.
func NewJobManager(
	reconcileHandler commands.ReconcilePackageTotalsCommandHandler,
	backorderSummaryHandler queries.GetBackorderSummaryQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		packageConsistencyJob: NewPackageConsistencyJob(reconcileHandler, logger),
		backorderReportJob:    NewBackorderReportJob(backorderSummaryHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.packageConsistencyJob.Start(); err != nil {
		return fmt.Errorf("failed to start package consistency job: %w", err)
	}

	if err := jm.backorderReportJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.packageConsistencyJob.Stop()
		return fmt.Errorf("failed to start backorder report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.packageConsistencyJob.Stop()
	jm.backorderReportJob.Stop()
}
