package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/shipment"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/services"
	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
)

// invoiceRootReplacer strips split-invoice suffixes so every partial
// invoice of an order maps back to the same root document reference.
var invoiceRootReplacer = strings.NewReplacer("-K1", "", "-K2", "", "-K3", "")

// CompleteOrderCommandHandler coordinates the completion of an order
// as one atomic unit of work:
//
//  1. acquire the per-order advisory lock, bounded by lockTimeout
//  2. re-verify eligibility under a row-level write lock
//  3. upsert the shipment header and synchronize package records
//  4. write shipment lines for picked items and backorders for
//     shortfalls
//  5. flip the order to Completed with audit notes
//  6. remove the work queue marker
//
// Everything between Begin and Commit either lands whole or not at
// all; the advisory lock is scoped to the same transaction, so it is
// released on every exit path. Losing the lock race surfaces as
// CompletionLocked or CompletionAlreadyCompleted, never as a partial
// shipment.
type CompleteOrderCommandHandler struct {
	uowFactory  CompletionUoWFactory
	activity    ports.ActivityLogger
	lockTimeout time.Duration
	logger      *slog.Logger
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(
	uowFactory CompletionUoWFactory,
	activity ports.ActivityLogger,
	lockTimeout time.Duration,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory:  uowFactory,
		activity:    activity,
		lockTimeout: lockTimeout,
		logger:      logger.With("component", "complete_order_handler"),
	}
}

// Handle processes one completion attempt and returns the typed result.
// The returned error is reserved for invalid commands; every runtime
// outcome, including lock contention and storage failures, is a
// CompletionResult variant.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, command CompleteOrderCommand) (CompletionResult, error) {
	if err := command.Validate(); err != nil {
		return CompletionResult{}, err
	}

	result := CompletionResult{}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return h.failed(result, err), nil
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	handle, err := uow.Locks().Acquire(ctx, ports.CompletionLockName(command.OrderID()), h.lockTimeout)
	if errors.Is(err, ports.ErrLockTimeout) {
		result.Outcome = CompletionLocked
		result.Message = "another completion is in progress for this order"
		return result, nil
	}
	if err != nil {
		h.logger.Error("advisory lock acquisition failed",
			"orderId", command.OrderID(), "error", err)
		return h.failed(result, err), nil
	}
	defer func() {
		_ = uow.Locks().Release(ctx, handle)
	}()

	ord, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		result.Outcome = CompletionOrderNotFound
		result.Message = fmt.Sprintf("order not found: %d", command.OrderID())
		return result, nil
	}
	if err != nil {
		return h.failed(result, err), nil
	}

	result.OrderNumber = ord.Number()

	if ord.Status() == order.Completed {
		result.Outcome = CompletionAlreadyCompleted
		result.Message = fmt.Sprintf("order %s is already completed", ord.Number())
		return result, nil
	}
	if err := ord.Status().ValidateComplete(); err != nil {
		result.Outcome = CompletionNotEligible
		result.Message = err.Error()
		return result, nil
	}

	header, err := h.buildHeader(ctx, uow, command, ord)
	if err != nil {
		return h.failed(result, err), nil
	}

	tripID, err := uow.ShipmentRepository().UpsertHeader(ctx, header)
	if err != nil {
		h.logger.Error("shipment header upsert failed",
			"orderNumber", ord.Number(), "error", err)
		result.Outcome = CompletionShipmentUpsertFailed
		result.Message = err.Error()
		return result, nil
	}

	effectiveTotal, err := h.syncPackages(ctx, uow, tripID, command.PackageCount())
	if err != nil {
		h.logger.Error("package synchronization failed",
			"orderNumber", ord.Number(), "tripId", tripID, "error", err)
		result.Outcome = CompletionPackageSyncFailed
		result.Message = err.Error()
		return result, nil
	}

	if err := h.writeLines(ctx, uow, command, ord, header.TripDate()); err != nil {
		return h.failed(result, err), nil
	}

	if err := ord.Complete(command.ActingUser(), effectiveTotal, time.Now()); err != nil {
		return h.failed(result, err), nil
	}
	if err := uow.OrderRepository().UpdateCompleted(ctx, ord); err != nil {
		return h.failed(result, err), nil
	}

	if err := uow.WorkQueueRepository().Delete(ctx, command.OrderID()); err != nil {
		return h.failed(result, err), nil
	}

	if err := uow.Commit(ctx); err != nil {
		return h.failed(result, err), nil
	}

	h.recordActivity(ctx, command, "completion",
		fmt.Sprintf("order %s completed with %d packages", ord.Number(), effectiveTotal))

	result.Outcome = CompletionOK
	result.PackageCount = effectiveTotal
	result.Message = fmt.Sprintf("order %s completed", ord.Number())
	return result, nil
}

// buildHeader assembles the shipment header from the order's frozen
// customer snapshot and the invoice-root lookup. The invoice root is
// best-effort: a failed lookup degrades to an empty reference.
func (h CompleteOrderCommandHandler) buildHeader(
	ctx context.Context,
	uow CompletionUoW,
	command CompleteOrderCommand,
	ord *order.Order,
) (*shipment.Header, error) {
	snapshot, err := uow.OrderRepository().GetHeaderSnapshot(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	invoiceRoot := ""
	invoiceNo, err := uow.OrderRepository().FindInvoiceRoot(ctx, command.OrderID())
	if err != nil {
		h.logger.Warn("invoice root lookup failed, continuing without",
			"orderId", command.OrderID(), "error", err)
	} else if invoiceNo != "" {
		invoiceRoot = invoiceRootReplacer.Replace(invoiceNo)
	}

	return shipment.NewHeader(
		ord.Number(),
		time.Now(),
		command.PackageCount(),
		shipment.CustomerSnapshot{
			Code:     snapshot.CustomerCode,
			Name:     snapshot.CustomerName,
			Region:   snapshot.Region,
			Address1: snapshot.Address1,
		},
		invoiceRoot,
	)
}

// syncPackages reconciles the shipment's package records with the
// requested count and returns the effective total the header records.
// Loaded packages above the target raise the total instead of failing.
func (h CompleteOrderCommandHandler) syncPackages(
	ctx context.Context,
	uow CompletionUoW,
	tripID int64,
	target int,
) (int, error) {
	repo := uow.ShipmentRepository()

	existing, err := repo.ListPackages(ctx, tripID)
	if err != nil {
		return 0, err
	}

	plan, err := services.NewPackageSynchronizer().Plan(existing, target)
	if err != nil {
		return 0, err
	}

	for _, pkgNo := range plan.ToCreate {
		if err := repo.CreatePackage(ctx, tripID, pkgNo); err != nil {
			return 0, err
		}
	}
	for _, pkgNo := range plan.ToDelete {
		err := repo.DeleteUnloadedPackage(ctx, tripID, pkgNo)
		if errors.Is(err, errs.ErrObjectNotFound) {
			// The package got loaded between planning and applying.
			// A physical fact beats the plan; keep it and keep going.
			h.logger.Warn("skipping delete of loaded package",
				"tripId", tripID, "pkgNo", pkgNo)
			continue
		}
		if err != nil {
			return 0, err
		}
	}

	if plan.EffectiveTotal != target {
		h.logger.Info("package total raised to loaded high-water mark",
			"tripId", tripID, "requested", target, "effective", plan.EffectiveTotal)
		if err := repo.UpdateTotals(ctx, tripID, plan.EffectiveTotal); err != nil {
			return 0, err
		}
	}

	return plan.EffectiveTotal, nil
}

// writeLines writes one shipment line per picked item and one backorder
// per shortfall. A line can produce both: partially picked items ship
// what was picked and backorder the rest.
func (h CompleteOrderCommandHandler) writeLines(
	ctx context.Context,
	uow CompletionUoW,
	command CompleteOrderCommand,
	ord *order.Order,
	tripDate time.Time,
) error {
	for _, input := range command.Lines() {
		// Over-scanned lines ship what was actually scanned; the
		// shortfall is floored at zero.
		sent := command.PickedQuantity(input.ItemCode)
		missing := input.QuantityOrdered - sent
		if missing < 0 {
			missing = 0
		}

		if sent > 0 {
			line, err := shipment.NewLine(input.ItemCode, input.WarehouseID, input.QuantityOrdered, sent)
			if err != nil {
				return err
			}
			if err := uow.ShipmentRepository().AddLine(ctx, ord.Number(), tripDate, line); err != nil {
				return err
			}
		}

		if missing > 0 {
			backorder, err := order.NewBackorder(ord.Number(), input.LineID, input.WarehouseID, input.ItemCode, missing)
			if err != nil {
				return err
			}
			if err := uow.BackorderRepository().Upsert(ctx, backorder); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h CompleteOrderCommandHandler) failed(result CompletionResult, err error) CompletionResult {
	result.Outcome = CompletionFailed
	result.Message = err.Error()
	return result
}

func (h CompleteOrderCommandHandler) recordActivity(ctx context.Context, command CompleteOrderCommand, action, detail string) {
	if h.activity == nil {
		return
	}
	h.activity.Record(ctx, ports.ActivityEntry{
		OrderID:    command.OrderID(),
		Action:     action,
		Detail:     detail,
		ActingUser: command.ActingUser(),
	})
}
