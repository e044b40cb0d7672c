package order

import (
	"fmt"

	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
)

// Status represents the lifecycle state of a fulfillment order.
// It implements a state machine; this engine owns exactly one
// transition, completion:
//
//	Draft ──> ReadyForPicking ──> ReadyForCompletion ──> Completed
//	                                      │
//	                                 (other transitions are owned
//	                                  by the surrounding order system)
//
// Cancelled and Completed are terminal for this engine. Status is a
// value object that validates transitions and provides string
// representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status of a freshly entered order.
	// Draft orders are not yet visible to the warehouse floor.
	Draft

	// ReadyForPicking indicates the order has been released to the
	// floor and operators may start scanning its pick lines.
	ReadyForPicking

	// ReadyForCompletion indicates scanning is done and a supervisor
	// may complete the order. This is the only status from which the
	// completion transition is allowed.
	ReadyForCompletion

	// Completed indicates the order has been completed and a shipment
	// record exists. This is a final state for this engine.
	Completed

	// Cancelled indicates the order was withdrawn before completion.
	// Cancelled orders can never be completed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Draft:              "Draft",
		ReadyForPicking:    "ReadyForPicking",
		ReadyForCompletion: "ReadyForCompletion",
		Completed:          "Completed",
		Cancelled:          "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:              "Draft",
		ReadyForPicking:    "ReadyForPicking",
		ReadyForCompletion: "ReadyForCompletion",
		Completed:          "Completed",
		Cancelled:          "Cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Draft, ReadyForPicking, ReadyForCompletion,
// Completed, Cancelled. Unknown (0) and any other values are invalid.
// Used to check Status values read from external sources (database,
// API) before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value,
// including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible
// from this status within the fulfillment engine.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateComplete checks if the status allows completion without
// performing the transition.
//
// Only ReadyForCompletion may be completed. All other statuses are
// rejected; the caller distinguishes "already completed" from "not
// eligible" before invoking the transition.
func (s Status) ValidateComplete() error {
	if s != ReadyForCompletion {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}
	return nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - ReadyForCompletion -> Completed
//
// Every other transition is rejected; Completed is a final state with
// no further transitions possible.
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if the transition is not allowed from the current status
func (s Status) Complete() (Status, error) {
	if err := s.ValidateComplete(); err != nil {
		return 0, err
	}

	return Completed, nil
}
