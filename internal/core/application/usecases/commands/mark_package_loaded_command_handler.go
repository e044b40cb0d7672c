package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// MarkPackageLoadedCommandHandler stamps a package as loaded, recording
// who loaded it and when.
type MarkPackageLoadedCommandHandler struct {
	uowFactory ShipmentUoWFactory
	logger     *slog.Logger
}

// NewMarkPackageLoadedCommandHandler creates a handler for package loading.
func NewMarkPackageLoadedCommandHandler(uowFactory ShipmentUoWFactory, logger *slog.Logger) MarkPackageLoadedCommandHandler {
	return MarkPackageLoadedCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "mark_package_loaded_handler"),
	}
}

// Handle marks one package loaded.
func (h MarkPackageLoadedCommandHandler) Handle(ctx context.Context, command MarkPackageLoadedCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipments := uow.ShipmentRepository()

	err := shipments.MarkPackageLoaded(
		ctx, command.TripID(), command.PkgNo(), command.ActingUser(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark package %d of trip %d loaded: %w",
			command.PkgNo(), command.TripID(), err)
	}

	// A package can be loaded past the recorded total; the header must
	// never report fewer packages than are physically on the truck.
	if err := shipments.RaiseTotals(ctx, command.TripID(), command.PkgNo()); err != nil {
		return fmt.Errorf("failed to raise package total of trip %d: %w", command.TripID(), err)
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.Info("package marked loaded",
		"tripId", command.TripID(), "pkgNo", command.PkgNo(), "loadedBy", command.ActingUser())
	return nil
}
