package jobs

import (
	"context"
	"log/slog"

	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PackageConsistencyJob periodically raises shipment package totals
// that lag behind the loaded high-water mark. Loading stations record
// packages independently of completion, so a header's total can fall
// behind what is physically on the truck until the next sweep.
type PackageConsistencyJob struct {
	handler commands.ReconcilePackageTotalsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPackageConsistencyJob creates a new job for reconciling package totals.
// Uses ReconcilePackageTotalsCommandHandler to sweep headers every 30 seconds.
func NewPackageConsistencyJob(handler commands.ReconcilePackageTotalsCommandHandler, logger *slog.Logger) *PackageConsistencyJob {
	return &PackageConsistencyJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "package_consistency_job"),
	}
}

// Start begins the consistency sweep, running every 30 seconds.
func (j *PackageConsistencyJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewReconcilePackageTotalsCommand()

		raised, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Package consistency sweep failed", "error", err)
			return
		}
		if raised > 0 {
			j.logger.InfoContext(ctx, "Package consistency sweep raised lagging totals", "headers", raised)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Package consistency job started (running every 30 seconds)")
	return nil
}

// Stop stops the consistency sweep.
func (j *PackageConsistencyJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Package consistency job stopped")
}
