// Package shipment models the shipment aggregate materialized at order
// completion: one header per (order number, trip date), its package
// records and its per-item shipment lines.
package shipment

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
)

// maxPackages is the safety ceiling on the package count of a single
// shipment, mirroring the column width of the label printing pipeline.
const maxPackages = 9999

// ErrHeaderIsNotConstructed is returned when a Header was not created
// through NewHeader.
var ErrHeaderIsNotConstructed = errors.New("Header must be created via NewHeader constructor")

// CustomerSnapshot carries the customer fields frozen onto the shipment
// header at completion time. Missing optional fields are empty strings,
// never an abort condition.
type CustomerSnapshot struct {
	Code     string
	Name     string
	Region   string
	Address1 string
}

// Header is the shipment header upserted by the completion coordinator,
// keyed by (order number, trip date).
//
// Invariants:
//   - the target package count is positive and bounded
//   - the recorded package total is never lowered below the highest
//     loaded package number (package monotonicity, enforced by the
//     synchronization step and the background consistency job)
type Header struct {
	orderNumber   string
	tripDate      time.Time
	pkgsTotal     int
	customer      CustomerSnapshot
	invoiceRoot   string
	isConstructed bool
}

// NewHeader creates a validated shipment header for one order and trip
// date. Customer name and address are truncated to their column widths
// rather than rejected, matching how the floor terminals feed data in.
func NewHeader(orderNumber string, tripDate time.Time, pkgsTotal int, customer CustomerSnapshot, invoiceRoot string) (*Header, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if pkgsTotal <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("pkgsTotal",
			fmt.Errorf("%d is not greater than 0", pkgsTotal))
	}
	if pkgsTotal > maxPackages {
		return nil, errs.NewValueIsOutOfRangeError("pkgsTotal", pkgsTotal, 1, maxPackages)
	}

	customer.Name = truncate(customer.Name, 60)
	customer.Address1 = truncate(customer.Address1, 128)

	// The trip date is the calendar day in the timestamp's own
	// location, not the UTC day: a completion just after local midnight
	// must key the shipment to the new local day.
	year, month, day := tripDate.Date()

	return &Header{
		orderNumber:   orderNumber,
		tripDate:      time.Date(year, month, day, 0, 0, 0, 0, tripDate.Location()),
		pkgsTotal:     pkgsTotal,
		customer:      customer,
		invoiceRoot:   invoiceRoot,
		isConstructed: true,
	}, nil
}

// Validate ensures the Header was created via NewHeader.
func (h *Header) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHeaderIsNotConstructed
	}
	return nil
}

// OrderNumber returns the order number the shipment belongs to.
func (h *Header) OrderNumber() string { return h.orderNumber }

// TripDate returns the trip date keying the shipment (midnight, no time part).
func (h *Header) TripDate() time.Time { return h.tripDate }

// PkgsTotal returns the target package count.
func (h *Header) PkgsTotal() int { return h.pkgsTotal }

// Customer returns the customer snapshot frozen onto the header.
func (h *Header) Customer() CustomerSnapshot { return h.customer }

// InvoiceRoot returns the invoice-root reference, or an empty string
// when no prior invoice was found (best-effort lookup).
func (h *Header) InvoiceRoot() string { return h.invoiceRoot }

// Package is one package record of a shipment. A loaded package is a
// physical fact and is never deleted or down-numbered by
// synchronization.
type Package struct {
	PkgNo      int
	Loaded     bool
	LoadedBy   string
	LoadedTime *time.Time
}

// Line is one per-item shipment line: the invoiced quantity and the
// quantity actually sent with this completion, accumulated per
// (trip date, order number, item code).
type Line struct {
	ItemCode    kernel.ItemCode
	WarehouseID int
	InvoicedQty float64
	QtySent     float64
}

// NewLine creates a validated shipment line. The sent quantity must be
// positive: fully unpicked lines never produce a shipment line.
func NewLine(itemCode kernel.ItemCode, warehouseID int, invoicedQty, qtySent float64) (Line, error) {
	if err := itemCode.Validate(); err != nil {
		return Line{}, err
	}
	if qtySent <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("qtySent",
			fmt.Errorf("%v is not greater than 0", qtySent))
	}
	if invoicedQty < 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("invoicedQty",
			fmt.Errorf("%v is negative", invoicedQty))
	}

	return Line{
		ItemCode:    itemCode,
		WarehouseID: warehouseID,
		InvoicedQty: invoicedQty,
		QtySent:     qtySent,
	}, nil
}

// truncate cuts s to limit characters. The column widths are varchar
// character limits, so the cut counts runes; slicing bytes could split
// a multibyte character and produce invalid UTF-8 the database rejects.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
