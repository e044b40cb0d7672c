package services

import (
	"fmt"
	"sort"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/shipment"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
)

// PackageSyncPlan describes the changes needed to bring a shipment's
// package records in line with a requested package count.
//
// EffectiveTotal is the package total the header must record after the
// plan is applied. It equals the requested target unless a loaded
// package carries a higher number, in which case the loaded high-water
// mark wins: loaded packages are physical facts and monotonically raise
// the total, they are never deleted or down-numbered.
type PackageSyncPlan struct {
	// EffectiveTotal is max(requested target, highest loaded package number).
	EffectiveTotal int

	// ToCreate lists missing package numbers in 1..EffectiveTotal,
	// ascending. Gaps inside the range are filled, not only the tail.
	ToCreate []int

	// ToDelete lists unloaded package numbers above EffectiveTotal,
	// ascending. Loaded packages never appear here.
	ToDelete []int
}

// PackageSynchronizer plans shipment package synchronization.
// It is a stateless domain service; construct one per use.
type PackageSynchronizer struct{}

// NewPackageSynchronizer creates a package synchronization service.
func NewPackageSynchronizer() *PackageSynchronizer {
	return &PackageSynchronizer{}
}

// Plan computes the changes needed to reach the requested package
// count given the currently persisted package records.
//
// Rules:
//   - missing package numbers up to the effective total are created
//   - unloaded packages above the effective total are deleted
//   - loaded packages are untouchable; a loaded package number above
//     the requested target raises the effective total instead of
//     producing a delete
//
// Returns an error only for an invalid target; contention with loaded
// packages is resolved by raising, never by failing.
func (s *PackageSynchronizer) Plan(existing []shipment.Package, target int) (PackageSyncPlan, error) {
	if target <= 0 {
		return PackageSyncPlan{}, errs.NewValueIsInvalidErrorWithCause("target",
			fmt.Errorf("%d is not greater than 0", target))
	}

	effective := target
	present := make(map[int]bool, len(existing))
	loaded := make(map[int]bool)
	for _, pkg := range existing {
		present[pkg.PkgNo] = true
		if pkg.Loaded {
			loaded[pkg.PkgNo] = true
			if pkg.PkgNo > effective {
				effective = pkg.PkgNo
			}
		}
	}

	plan := PackageSyncPlan{EffectiveTotal: effective}
	for pkgNo := 1; pkgNo <= effective; pkgNo++ {
		if !present[pkgNo] {
			plan.ToCreate = append(plan.ToCreate, pkgNo)
		}
	}
	for _, pkg := range existing {
		if pkg.PkgNo > effective && !loaded[pkg.PkgNo] {
			plan.ToDelete = append(plan.ToDelete, pkg.PkgNo)
		}
	}
	sort.Ints(plan.ToDelete)

	return plan, nil
}
