package ports

import (
	"context"
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/shipment"
)

// OrderHeaderSnapshot carries the order header and customer fields the
// completion coordinator freezes onto the shipment document. Optional
// fields default to empty strings; a missing customer is not an error.
type OrderHeaderSnapshot struct {
	OrderNumber  string
	CustomerCode string
	CustomerName string
	Region       string
	Address1     string
}

// OrderRepository defines the persistence contract for order aggregates
// within the completion transaction.
type OrderRepository interface {
	// GetForUpdate retrieves an order by id under a row-level write
	// lock, so a concurrent completion cannot interleave between this
	// read and the status flip. Must run inside a transaction.
	// Returns errs.ErrObjectNotFound when the order does not exist.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// GetHeaderSnapshot fetches the header/customer fields for the
	// shipment document via a join. Missing optional fields come back
	// as empty strings.
	GetHeaderSnapshot(ctx context.Context, id int64) (OrderHeaderSnapshot, error)

	// FindInvoiceRoot looks up the invoice-root reference from prior
	// invoices of the order. Best-effort: returns an empty string when
	// no invoice exists; only infrastructure failures are errors.
	FindInvoiceRoot(ctx context.Context, id int64) (string, error)

	// UpdateCompleted persists the completed order's status and audit
	// fields. The aggregate must already be in Completed status.
	UpdateCompleted(ctx context.Context, aggregate *order.Order) error
}

// PickLineRepository defines persistence for pick lines, including the
// atomic increment the scan accumulator relies on.
type PickLineRepository interface {
	// IncrementPicked atomically adds delta to the picked quantity of
	// one (order, item) pair as a single database-side update, and
	// returns the authoritative post-increment picked and ordered
	// quantities. Concurrent increments on the same row serialize at
	// the storage layer; no advisory lock is involved.
	// Returns errs.ErrObjectNotFound when no matching line exists.
	IncrementPicked(ctx context.Context, orderID int64, itemCode kernel.ItemCode, delta float64) (picked, ordered float64, err error)

	// GetQuantities returns the latest committed picked and ordered
	// quantities for one line. Snapshot only: may be stale by the time
	// it is displayed.
	GetQuantities(ctx context.Context, orderID int64, itemCode kernel.ItemCode) (picked, ordered float64, err error)

	// ListByOrder returns all pick lines of an order.
	ListByOrder(ctx context.Context, orderID int64) ([]*order.PickLine, error)
}

// LaggingHeader reports a shipment header whose recorded package total
// is below its highest loaded package number.
type LaggingHeader struct {
	TripID    int64
	PkgsTotal int
	MaxLoaded int
}

// ShipmentRepository defines persistence for the shipment aggregate.
// All write methods must participate in the caller's transaction; the
// repository never opens its own.
type ShipmentRepository interface {
	// UpsertHeader inserts the header if absent for its
	// (order number, trip date) key, otherwise updates the package
	// count and customer snapshot in place, preserving the original
	// package count and an already-set invoice root. Returns the
	// resolvable header id; failing to resolve one is an error.
	UpsertHeader(ctx context.Context, header *shipment.Header) (int64, error)

	// ListPackages returns the package records of a shipment.
	ListPackages(ctx context.Context, tripID int64) ([]shipment.Package, error)

	// CreatePackage inserts one pending package record.
	CreatePackage(ctx context.Context, tripID int64, pkgNo int) error

	// DeleteUnloadedPackage removes one package record only if it is
	// not marked loaded. Deleting a loaded package is a no-op returning
	// errs.ErrObjectNotFound so callers notice the miss.
	DeleteUnloadedPackage(ctx context.Context, tripID int64, pkgNo int) error

	// UpdateTotals records the effective package total on the header
	// when it differs from the requested target (loaded high-water
	// mark raise).
	UpdateTotals(ctx context.Context, tripID int64, pkgsTotal int) error

	// AddLine accumulates a shipment line for
	// (trip date, order number, item code): inserts the line or adds
	// the sent quantity onto the existing one.
	AddLine(ctx context.Context, orderNumber string, tripDate time.Time, line shipment.Line) error

	// MarkPackageLoaded flags a package as physically loaded, stamping
	// who loaded it and when.
	MarkPackageLoaded(ctx context.Context, tripID int64, pkgNo int, loadedBy string, loadedAt time.Time) error

	// RaiseTotals lifts the header's package total to floor when it is
	// currently below it. A header already at or above floor is left
	// untouched; totals are never lowered through this method.
	RaiseTotals(ctx context.Context, tripID int64, floor int) error

	// FindLaggingHeaders returns headers whose recorded package total
	// lags behind their loaded high-water mark. Used by the background
	// consistency job to enforce package monotonicity.
	FindLaggingHeaders(ctx context.Context) ([]LaggingHeader, error)
}

// BackorderRepository defines the append-only backorder ledger.
type BackorderRepository interface {
	// Upsert records a shortfall. If an unfulfilled record for the same
	// (order number, item code) already exists its missing quantity is
	// set to the new value; values are never summed.
	Upsert(ctx context.Context, backorder *order.Backorder) error

	// PendingCountsByWarehouse returns the number of unfulfilled
	// backorders per warehouse, for reporting.
	PendingCountsByWarehouse(ctx context.Context) (map[int]int64, error)
}

// WorkQueueRepository manages the pending-completion queue markers.
type WorkQueueRepository interface {
	// Add enqueues an order awaiting completion. Idempotent.
	Add(ctx context.Context, orderID int64) error

	// Delete removes the order's queue entry. Deleting an absent entry
	// is not an error.
	Delete(ctx context.Context, orderID int64) error
}

// ActivityEntry is one fire-and-forget audit record.
type ActivityEntry struct {
	OrderID    int64
	ItemCode   string
	Action     string
	Detail     string
	ActingUser string
}

// ActivityLogger receives fire-and-forget notifications of scans,
// over-scans and completions. Implementations must swallow their own
// failures: logging must never abort the core operation.
type ActivityLogger interface {
	Record(ctx context.Context, entry ActivityEntry)
}
