package commands

import (
	"context"
	"fmt"
	"log/slog"
)

// ReconcilePackageTotalsCommandHandler sweeps shipment headers and
// raises every package total that lags behind its loaded high-water
// mark. Totals are only ever raised; the sweep never shrinks a header.
type ReconcilePackageTotalsCommandHandler struct {
	uowFactory ShipmentUoWFactory
	logger     *slog.Logger
}

// NewReconcilePackageTotalsCommandHandler creates a handler for the
// package total sweep.
func NewReconcilePackageTotalsCommandHandler(uowFactory ShipmentUoWFactory, logger *slog.Logger) ReconcilePackageTotalsCommandHandler {
	return ReconcilePackageTotalsCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "reconcile_package_totals_handler"),
	}
}

// Handle runs one sweep and returns the number of headers whose total
// was raised.
func (h ReconcilePackageTotalsCommandHandler) Handle(ctx context.Context, command ReconcilePackageTotalsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments := uow.ShipmentRepository()

	lagging, err := shipments.FindLaggingHeaders(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to find lagging shipment headers: %w", err)
	}
	if len(lagging) == 0 {
		return 0, nil
	}

	for _, header := range lagging {
		if err := shipments.UpdateTotals(ctx, header.TripID, header.MaxLoaded); err != nil {
			return 0, fmt.Errorf("failed to raise package total of trip %d: %w", header.TripID, err)
		}
		h.logger.Info("package total raised to loaded high-water mark",
			"tripId", header.TripID, "from", header.PkgsTotal, "to", header.MaxLoaded)
	}

	if err := uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(lagging), nil
}
