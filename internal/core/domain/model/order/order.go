package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through a package constructor. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a warehouse fulfillment order. It is the aggregate
// root the completion coordinator mutates; scanning mutates the
// order's pick lines through their own path.
//
// Order follows these invariants:
//   - Must have a positive numeric identifier
//   - Must have a non-empty order number
//   - Status transitions follow the Status state machine; only
//     ReadyForCompletion -> Completed is owned by this engine
//   - Completion stamps the acting user, date and package count audit
//     fields exactly once
//
// The struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the numeric identifier assigned by the host order system
	id int64

	// number is the human-readable order number
	number string

	// status is the current state in the order lifecycle
	status Status

	// completedBy is the acting user recorded at completion (empty until then)
	completedBy string

	// completionNote is the free-text audit note stamped at completion
	completionNote string

	// packageNote records the package count used at completion
	packageNote string

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a validated Order.
//
// Parameters:
//   - id: numeric identifier (must be positive)
//   - number: human-readable order number (must be non-empty)
//   - status: current lifecycle status (must be a valid Status)
//
// Returns a validation error if any parameter is invalid.
func NewOrder(id int64, number string, status Status) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its
// completion audit fields. Used by repositories only.
func RestoreOrder(id int64, number string, status Status, completedBy, completionNote, packageNote string) (*Order, error) {
	o, err := NewOrder(id, number, status)
	if err != nil {
		return nil, err
	}

	o.completedBy = completedBy
	o.completionNote = completionNote
	o.packageNote = packageNote
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's numeric identifier.
func (o *Order) ID() int64 {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CompletedBy returns the acting user recorded at completion,
// or an empty string if the order has not been completed.
func (o *Order) CompletedBy() string {
	return o.completedBy
}

// CompletionNote returns the audit note stamped at completion.
func (o *Order) CompletionNote() string {
	return o.completionNote
}

// PackageNote returns the package count audit note stamped at completion.
func (o *Order) PackageNote() string {
	return o.packageNote
}

// Complete marks the order as completed, recording who completed it,
// when, and with how many packages.
//
// Business rules enforced:
//   - The order must be in ReadyForCompletion status
//   - The acting user must be supplied explicitly (never read from
//     ambient state)
//   - The package count must be positive
//
// After successful completion the status is Completed, which is final
// for this engine. The status re-verification against the persisted
// row is the coordinator's job; this method only guards the in-memory
// transition.
func (o *Order) Complete(actingUser string, packageCount int, completedAt time.Time) error {
	actingUser = strings.TrimSpace(actingUser)
	if actingUser == "" {
		return errs.NewValueIsRequiredError("actingUser")
	}
	if packageCount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("packageCount",
			fmt.Errorf("%d is not greater than 0", packageCount))
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.completedBy = actingUser
	o.completionNote = fmt.Sprintf("COMPLETED: %s / %s", actingUser, completedAt.Format("02.01.2006"))
	o.packageNote = fmt.Sprintf("PACKAGE COUNT: %d", packageCount)
	return nil
}

// setID validates and sets the order's identifier.
// This is a private method used only during construction.
func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderId", fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

// setNumber validates and sets the order number.
// This is a private method used only during construction.
func (o *Order) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.number = number
	return nil
}

// setStatus validates and sets the lifecycle status.
// This is a private method used only during construction.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
