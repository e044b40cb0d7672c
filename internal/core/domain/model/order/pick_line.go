package order

import (
	"errors"
	"fmt"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
)

// ErrPickLineIsNotConstructed is returned when a PickLine was not
// created through NewPickLine or RestorePickLine.
var ErrPickLineIsNotConstructed = errors.New("PickLine must be created via NewPickLine constructor")

// PickLine is one row of an order's pick list: an item, the warehouse
// it ships from, the quantity ordered and the authoritative quantity
// picked so far.
//
// Invariants:
//   - quantity picked is never negative
//   - quantity picked may legitimately exceed quantity ordered by at
//     most the configured over-scan tolerance; the atomic increment
//     path persists the excess and reports it rather than reverting
//
// The quantity picked field is mutated exclusively by the atomic scan
// accumulator at the storage layer; this type is a read model plus the
// arithmetic the coordinator needs (missing quantities, over-limit
// checks).
type PickLine struct {
	lineID          int64
	orderID         int64
	itemCode        kernel.ItemCode
	warehouseID     int
	quantityOrdered float64
	quantityPicked  float64
	isConstructed   bool
}

// NewPickLine creates a validated pick line with zero picked quantity.
func NewPickLine(lineID, orderID int64, itemCode kernel.ItemCode, warehouseID int, quantityOrdered float64) (*PickLine, error) {
	return RestorePickLine(lineID, orderID, itemCode, warehouseID, quantityOrdered, 0)
}

// RestorePickLine reconstructs a pick line from persistence.
func RestorePickLine(
	lineID, orderID int64,
	itemCode kernel.ItemCode,
	warehouseID int,
	quantityOrdered, quantityPicked float64,
) (*PickLine, error) {
	l := &PickLine{isConstructed: true}

	if err := errors.Join(
		l.setLineID(lineID),
		l.setOrderID(orderID),
		l.setItemCode(itemCode),
		l.setWarehouseID(warehouseID),
		l.setQuantityOrdered(quantityOrdered),
		l.setQuantityPicked(quantityPicked),
	); err != nil {
		return nil, err
	}

	return l, nil
}

// Validate ensures the PickLine was created via a constructor.
func (l *PickLine) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrPickLineIsNotConstructed
	}
	return nil
}

// LineID returns the pick line's identifier.
func (l *PickLine) LineID() int64 {
	return l.lineID
}

// OrderID returns the identifier of the owning order.
func (l *PickLine) OrderID() int64 {
	return l.orderID
}

// ItemCode returns the item this line picks.
func (l *PickLine) ItemCode() kernel.ItemCode {
	return l.itemCode
}

// WarehouseID returns the warehouse the line ships from.
func (l *PickLine) WarehouseID() int {
	return l.warehouseID
}

// QuantityOrdered returns the quantity the customer ordered.
func (l *PickLine) QuantityOrdered() float64 {
	return l.quantityOrdered
}

// QuantityPicked returns the quantity scanned so far.
func (l *PickLine) QuantityPicked() float64 {
	return l.quantityPicked
}

// Missing returns the shortfall at the current picked quantity.
// Never negative: over-picked lines have zero missing quantity.
func (l *PickLine) Missing() float64 {
	missing := l.quantityOrdered - l.quantityPicked
	if missing < 0 {
		return 0
	}
	return missing
}

// IsOverLimit reports whether the picked quantity exceeds the ordered
// quantity by more than the given tolerance.
func (l *PickLine) IsOverLimit(tolerance float64) bool {
	return l.quantityPicked > l.quantityOrdered+tolerance
}

func (l *PickLine) setLineID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("lineId", fmt.Errorf("%d is not greater than 0", id))
	}
	l.lineID = id
	return nil
}

func (l *PickLine) setOrderID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", id))
	}
	l.orderID = id
	return nil
}

func (l *PickLine) setItemCode(code kernel.ItemCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	l.itemCode = code
	return nil
}

func (l *PickLine) setWarehouseID(id int) error {
	if id < 0 {
		return errs.NewValueIsInvalidErrorWithCause("warehouseId", fmt.Errorf("%d is negative", id))
	}
	l.warehouseID = id
	return nil
}

func (l *PickLine) setQuantityOrdered(qty float64) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityOrdered", fmt.Errorf("%v is negative", qty))
	}
	l.quantityOrdered = qty
	return nil
}

func (l *PickLine) setQuantityPicked(qty float64) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityPicked", fmt.Errorf("%v is negative", qty))
	}
	l.quantityPicked = qty
	return nil
}
