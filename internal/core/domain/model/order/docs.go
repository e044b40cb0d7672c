// Package order provides domain entities and business logic for order
// fulfillment. It implements the Order aggregate root, its pick list,
// and the backorder ledger record.
//
// The package includes:
//   - Order: The aggregate root managing order identity and the
//     completion lifecycle transition
//   - Status: A state machine that enforces valid status transitions;
//     this engine owns only ReadyForCompletion -> Completed
//   - PickLine: One row of the order's pick list with its authoritative
//     picked quantity
//   - Backorder: An append-only record of quantity missing at
//     completion time
//
// Key business rules:
//   - Completion is valid only from ReadyForCompletion and happens
//     exactly once per order
//   - Picked quantities are never negative and may exceed the ordered
//     quantity by at most the configured over-scan tolerance
//   - Backorders are additive audit records, never merged into other
//     lifecycle state
//
// The package follows Domain-Driven Design principles, providing rich
// domain behavior, encapsulation, and validation to ensure business
// rules are enforced.
package order
