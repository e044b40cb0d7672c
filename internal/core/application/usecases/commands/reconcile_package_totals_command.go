package commands

import (
	"errors"

	"github.com/lushajj14/logline-wms-sub001/internal/pkg/guard"
)

var ErrReconcilePackageTotalsCommandIsNotConstructed = errors.New(
	"ReconcilePackageTotalsCommand must be created via NewReconcilePackageTotalsCommand constructor",
)

// ReconcilePackageTotalsCommand triggers a sweep over shipment headers
// whose recorded package total lags behind the highest loaded package
// number, raising each lagging total to its loaded high-water mark.
// Loading records packages that completion may not have counted yet;
// the sweep restores the invariant that a header's total never drops
// below what is physically on the truck.
//
// Example:
//
//	cmd := NewReconcilePackageTotalsCommand()
//	handler := NewReconcilePackageTotalsCommandHandler(uowFactory, logger)
//	raised, err := handler.Handle(ctx, cmd)
type ReconcilePackageTotalsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcilePackageTotalsCommand creates a new command to trigger the
// package total sweep. This is a parameterless command: it always
// inspects every header.
func NewReconcilePackageTotalsCommand() ReconcilePackageTotalsCommand {
	return ReconcilePackageTotalsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcilePackageTotalsCommandIsNotConstructed if validation fails.
func (c *ReconcilePackageTotalsCommand) Validate() error {
	return c.guard.Validate(
		ErrReconcilePackageTotalsCommandIsNotConstructed,
	)
}
