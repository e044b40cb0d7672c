package jobs

import (
	"context"
	"log/slog"

	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// BackorderReportJob periodically logs the number of unfulfilled
// backorders per warehouse, so shortfalls surface in the operational
// logs without anyone polling the ledger.
type BackorderReportJob struct {
	handler queries.GetBackorderSummaryQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewBackorderReportJob creates a new job for the backorder report.
// Uses GetBackorderSummaryQueryHandler to aggregate the ledger every 15 minutes.
func NewBackorderReportJob(handler queries.GetBackorderSummaryQueryHandler, logger *slog.Logger) *BackorderReportJob {
	return &BackorderReportJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "backorder_report_job"),
	}
}

// Start begins the report job, running every 15 minutes.
func (j *BackorderReportJob) Start() error {
	_, err := j.cron.AddFunc("0 */15 * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetBackorderSummaryQuery()

		summary, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Backorder report failed", "error", err)
			return
		}
		if summary.Total == 0 {
			j.logger.InfoContext(ctx, "No pending backorders")
			return
		}
		for _, row := range summary.Warehouses {
			j.logger.InfoContext(ctx, "Pending backorders",
				"warehouseId", row.WarehouseID, "count", row.Pending)
		}
		j.logger.InfoContext(ctx, "Backorder report complete", "total", summary.Total)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backorder report job started (running every 15 minutes)")
	return nil
}

// Stop stops the report job.
func (j *BackorderReportJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backorder report job stopped")
}
