package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
)

// RecordScanCommandHandler performs the atomic scan increment.
//
// The increment is a single database-side update, so concurrent scans
// of the same item serialize at the storage layer while scans of
// different items proceed fully in parallel; no advisory lock is taken
// on this path. Each attempt runs in its own short transaction: the increment
// either commits whole or not at all.
//
// An over-scan is reported but never reverted. The physical items were
// scanned; the ledger reflects what happened and correction is a
// separate workflow.
type RecordScanCommandHandler struct {
	uowFactory ScanUoWFactory
	activity   ports.ActivityLogger
	logger     *slog.Logger
}

// NewRecordScanCommandHandler creates a handler for scan operations.
func NewRecordScanCommandHandler(
	uowFactory ScanUoWFactory,
	activity ports.ActivityLogger,
	logger *slog.Logger,
) RecordScanCommandHandler {
	return RecordScanCommandHandler{
		uowFactory: uowFactory,
		activity:   activity,
		logger:     logger.With("component", "record_scan_handler"),
	}
}

// Handle processes one scan increment and returns the typed result.
// The returned error is reserved for invalid commands; every runtime
// outcome, including storage failures, is a ScanResult variant.
func (h RecordScanCommandHandler) Handle(ctx context.Context, command RecordScanCommand) (ScanResult, error) {
	if err := command.Validate(); err != nil {
		return ScanResult{}, err
	}

	result := ScanResult{
		OrderID:  command.OrderID(),
		ItemCode: command.ItemCode().String(),
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		result.Outcome = ScanStorageError
		result.Message = err.Error()
		return result, nil
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	picked, ordered, err := uow.PickLineRepository().IncrementPicked(
		ctx, command.OrderID(), command.ItemCode(), command.Delta())
	if errors.Is(err, errs.ErrObjectNotFound) {
		result.Outcome = ScanItemNotFound
		result.Message = fmt.Sprintf("item not found: %s", command.ItemCode())
		h.recordActivity(ctx, command, "invalid_scan", result.Message)
		return result, nil
	}
	if err != nil {
		result.Outcome = ScanStorageError
		result.Message = err.Error()
		return result, nil
	}

	// Commit before the limit check: the increment stands even when it
	// lands over the tolerance.
	if err := uow.Commit(ctx); err != nil {
		result.Outcome = ScanStorageError
		result.Message = err.Error()
		return result, nil
	}

	if qty := command.OrderedQty(); qty != nil {
		ordered = *qty
	}
	limit := ordered + command.OverScanTolerance()
	result.QuantityPicked = picked
	result.Limit = limit

	if picked > limit {
		result.Outcome = ScanOverLimit
		result.Message = fmt.Sprintf("over-scan: allowed %v, current %v", limit, picked)
		h.recordActivity(ctx, command, "over_scan", result.Message)
		return result, nil
	}

	result.Outcome = ScanOK
	result.Message = fmt.Sprintf("scanned: %s", command.ItemCode())
	h.recordActivity(ctx, command, "scan", result.Message)
	return result, nil
}

func (h RecordScanCommandHandler) recordActivity(ctx context.Context, command RecordScanCommand, action, detail string) {
	if h.activity == nil {
		return
	}
	h.activity.Record(ctx, ports.ActivityEntry{
		OrderID:    command.OrderID(),
		ItemCode:   command.ItemCode().String(),
		Action:     action,
		Detail:     detail,
		ActingUser: command.ActingUser(),
	})
}
