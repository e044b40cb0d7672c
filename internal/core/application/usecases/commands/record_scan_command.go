package commands

import (
	"errors"
	"fmt"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/guard"
)

var ErrRecordScanCommandIsNotConstructed = errors.New(
	"RecordScanCommand must be created via NewRecordScanCommand constructor",
)

// RecordScanCommand registers one barcode scan against an order's pick
// line: add Delta to the picked quantity of (OrderID, ItemCode) and
// report the authoritative new total.
//
// OrderedQty is optional; when nil the ordered quantity is read from
// the pick line itself. OverScanTolerance is the amount by which the
// picked quantity may exceed the ordered quantity before the result is
// flagged.
//
// Example:
//
//	cmd, err := NewRecordScanCommand(1001, "SKU-A", 1, nil, 0, "ayse")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type RecordScanCommand struct {
	orderID           int64
	itemCode          kernel.ItemCode
	delta             float64
	orderedQty        *float64
	overScanTolerance float64
	actingUser        string

	guard guard.ConstructorGuard
}

// NewRecordScanCommand creates a validated scan command.
// Delta must be positive: corrections are a separate workflow, the scan
// path only accumulates.
func NewRecordScanCommand(
	orderID int64,
	itemCode string,
	delta float64,
	orderedQty *float64,
	overScanTolerance float64,
	actingUser string,
) (RecordScanCommand, error) {
	if orderID <= 0 {
		return RecordScanCommand{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not greater than 0", orderID))
	}
	code, err := kernel.NewItemCode(itemCode)
	if err != nil {
		return RecordScanCommand{}, err
	}
	if delta <= 0 {
		return RecordScanCommand{}, errs.NewValueIsInvalidErrorWithCause("delta",
			fmt.Errorf("%v is not greater than 0", delta))
	}
	if orderedQty != nil && *orderedQty < 0 {
		return RecordScanCommand{}, errs.NewValueIsInvalidErrorWithCause("orderedQty",
			fmt.Errorf("%v is negative", *orderedQty))
	}
	if overScanTolerance < 0 {
		return RecordScanCommand{}, errs.NewValueIsInvalidErrorWithCause("overScanTolerance",
			fmt.Errorf("%v is negative", overScanTolerance))
	}
	if actingUser == "" {
		return RecordScanCommand{}, errs.NewValueIsRequiredError("actingUser")
	}

	return RecordScanCommand{
		orderID:           orderID,
		itemCode:          code,
		delta:             delta,
		orderedQty:        orderedQty,
		overScanTolerance: overScanTolerance,
		actingUser:        actingUser,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order being scanned against.
func (c *RecordScanCommand) OrderID() int64 { return c.orderID }

// ItemCode returns the normalized scanned item code.
func (c *RecordScanCommand) ItemCode() kernel.ItemCode { return c.itemCode }

// Delta returns the quantity to add.
func (c *RecordScanCommand) Delta() float64 { return c.delta }

// OrderedQty returns the caller-supplied ordered quantity, or nil when
// it should be read from the pick line.
func (c *RecordScanCommand) OrderedQty() *float64 { return c.orderedQty }

// OverScanTolerance returns the allowed over-scan amount.
func (c *RecordScanCommand) OverScanTolerance() float64 { return c.overScanTolerance }

// ActingUser returns the operator performing the scan.
func (c *RecordScanCommand) ActingUser() string { return c.actingUser }

// Validate ensures the command was created through the constructor.
func (c *RecordScanCommand) Validate() error {
	return c.guard.Validate(ErrRecordScanCommandIsNotConstructed)
}
