// Package services provides domain services that orchestrate business
// rules spanning multiple entities of the fulfillment system. It
// implements logic that doesn't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - PackageSynchronizer: computes the package-record changes needed to
//     bring a shipment to a target package count without ever touching a
//     loaded package
//
// Domain services stay free of persistence concerns; repositories apply
// the plans they produce.
package services
