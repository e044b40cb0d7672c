package commands

import (
	"errors"
	"fmt"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// PickLineInput is the caller-supplied snapshot of one pick line at
// completion time. Callers are expected to fetch fresh quantities
// immediately before invoking completion.
type PickLineInput struct {
	LineID          int64
	ItemCode        kernel.ItemCode
	WarehouseID     int
	QuantityOrdered float64
}

// CompleteOrderCommand triggers the completion of an order: verify
// eligibility under lock, materialize the shipment, record backorders
// for shortfalls, flip the status and drain the work queue, all in one
// atomic unit of work.
//
// PickedQuantities maps item code to the quantity actually sent;
// absent items default to zero and produce backorders for their full
// ordered quantity. The core never blocks completion on shortfalls;
// whether to ask the operator "missing items, complete anyway?" is a
// caller-level choice.
type CompleteOrderCommand struct {
	orderID          int64
	packageCount     int
	lines            []PickLineInput
	pickedQuantities map[string]float64
	actingUser       string

	guard guard.ConstructorGuard
}

// LineInput builds a PickLineInput from raw values, normalizing the
// item code the same way the scan path does.
func LineInput(lineID int64, itemCode string, warehouseID int, quantityOrdered float64) (PickLineInput, error) {
	code, err := kernel.NewItemCode(itemCode)
	if err != nil {
		return PickLineInput{}, err
	}
	if quantityOrdered < 0 {
		return PickLineInput{}, errs.NewValueIsInvalidErrorWithCause("quantityOrdered",
			fmt.Errorf("%v is negative", quantityOrdered))
	}
	return PickLineInput{
		LineID:          lineID,
		ItemCode:        code,
		WarehouseID:     warehouseID,
		QuantityOrdered: quantityOrdered,
	}, nil
}

// NewCompleteOrderCommand creates a validated completion command.
func NewCompleteOrderCommand(
	orderID int64,
	packageCount int,
	lines []PickLineInput,
	pickedQuantities map[string]float64,
	actingUser string,
) (CompleteOrderCommand, error) {
	if orderID <= 0 {
		return CompleteOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not greater than 0", orderID))
	}
	if packageCount <= 0 {
		return CompleteOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("packageCount",
			fmt.Errorf("%d is not greater than 0", packageCount))
	}
	if actingUser == "" {
		return CompleteOrderCommand{}, errs.NewValueIsRequiredError("actingUser")
	}
	for _, line := range lines {
		if err := line.ItemCode.Validate(); err != nil {
			return CompleteOrderCommand{}, err
		}
	}

	// Normalize the picked map onto the same key space as the line codes.
	picked := make(map[string]float64, len(pickedQuantities))
	for rawCode, qty := range pickedQuantities {
		code, err := kernel.NewItemCode(rawCode)
		if err != nil {
			return CompleteOrderCommand{}, err
		}
		picked[code.String()] = qty
	}

	return CompleteOrderCommand{
		orderID:          orderID,
		packageCount:     packageCount,
		lines:            lines,
		pickedQuantities: picked,
		actingUser:       actingUser,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to complete.
func (c *CompleteOrderCommand) OrderID() int64 { return c.orderID }

// PackageCount returns the requested target package count.
func (c *CompleteOrderCommand) PackageCount() int { return c.packageCount }

// Lines returns the pick line snapshots.
func (c *CompleteOrderCommand) Lines() []PickLineInput { return c.lines }

// PickedQuantity returns the sent quantity for an item code,
// defaulting to zero for items never scanned.
func (c *CompleteOrderCommand) PickedQuantity(code kernel.ItemCode) float64 {
	return c.pickedQuantities[code.String()]
}

// ActingUser returns the supervisor performing the completion.
func (c *CompleteOrderCommand) ActingUser() string { return c.actingUser }

// Validate ensures the command was created through the constructor.
func (c *CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}
