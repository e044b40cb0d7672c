package commands

import (
	"errors"
	"fmt"

	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/guard"
)

var ErrMarkPackageLoadedCommandIsNotConstructed = errors.New(
	"MarkPackageLoadedCommand must be created via NewMarkPackageLoadedCommand constructor",
)

// MarkPackageLoadedCommand flags one shipment package as physically
// loaded onto the vehicle. Loaded packages become immutable facts:
// synchronization never deletes them and their numbers raise the
// package total when needed.
type MarkPackageLoadedCommand struct {
	tripID     int64
	pkgNo      int
	actingUser string

	guard guard.ConstructorGuard
}

// NewMarkPackageLoadedCommand creates a validated load command.
func NewMarkPackageLoadedCommand(tripID int64, pkgNo int, actingUser string) (MarkPackageLoadedCommand, error) {
	if tripID <= 0 {
		return MarkPackageLoadedCommand{}, errs.NewValueIsInvalidErrorWithCause("tripId",
			fmt.Errorf("%d is not greater than 0", tripID))
	}
	if pkgNo <= 0 {
		return MarkPackageLoadedCommand{}, errs.NewValueIsInvalidErrorWithCause("pkgNo",
			fmt.Errorf("%d is not greater than 0", pkgNo))
	}
	if actingUser == "" {
		return MarkPackageLoadedCommand{}, errs.NewValueIsRequiredError("actingUser")
	}

	return MarkPackageLoadedCommand{
		tripID:     tripID,
		pkgNo:      pkgNo,
		actingUser: actingUser,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// TripID returns the shipment header id.
func (c *MarkPackageLoadedCommand) TripID() int64 { return c.tripID }

// PkgNo returns the package number to mark loaded.
func (c *MarkPackageLoadedCommand) PkgNo() int { return c.pkgNo }

// ActingUser returns the operator who loaded the package.
func (c *MarkPackageLoadedCommand) ActingUser() string { return c.actingUser }

// Validate ensures the command was created through the constructor.
func (c *MarkPackageLoadedCommand) Validate() error {
	return c.guard.Validate(ErrMarkPackageLoadedCommandIsNotConstructed)
}
