package order

import (
	"errors"
	"fmt"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
)

// ErrBackorderIsNotConstructed is returned when a Backorder was not
// created through NewBackorder.
var ErrBackorderIsNotConstructed = errors.New("Backorder must be created via NewBackorder constructor")

// Backorder is an append-only ledger record of quantity that could not
// be fulfilled at completion time. Created by the completion
// coordinator for every pick line whose picked quantity fell short of
// the ordered quantity; never touched by the scan path.
type Backorder struct {
	orderNumber   string
	lineID        int64
	warehouseID   int
	itemCode      kernel.ItemCode
	qtyMissing    float64
	isConstructed bool
}

// NewBackorder creates a validated backorder record.
// The missing quantity must be strictly positive: lines that are fully
// picked never produce a backorder.
func NewBackorder(orderNumber string, lineID int64, warehouseID int, itemCode kernel.ItemCode, qtyMissing float64) (*Backorder, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	if err := itemCode.Validate(); err != nil {
		return nil, err
	}
	if qtyMissing <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("qtyMissing",
			fmt.Errorf("%v is not greater than 0", qtyMissing))
	}

	return &Backorder{
		orderNumber:   orderNumber,
		lineID:        lineID,
		warehouseID:   warehouseID,
		itemCode:      itemCode,
		qtyMissing:    qtyMissing,
		isConstructed: true,
	}, nil
}

// Validate ensures the Backorder was created via NewBackorder.
func (b *Backorder) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBackorderIsNotConstructed
	}
	return nil
}

// OrderNumber returns the order number the shortfall belongs to.
func (b *Backorder) OrderNumber() string { return b.orderNumber }

// LineID returns the pick line the shortfall was computed from.
func (b *Backorder) LineID() int64 { return b.lineID }

// WarehouseID returns the warehouse the missing quantity ships from.
func (b *Backorder) WarehouseID() int { return b.warehouseID }

// ItemCode returns the item with the shortfall.
func (b *Backorder) ItemCode() kernel.ItemCode { return b.itemCode }

// QtyMissing returns the missing quantity (ordered minus picked).
func (b *Backorder) QtyMissing() float64 { return b.qtyMissing }
