package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control, transaction-bound repositories, and
// the advisory lock manager bound to the same transaction so that
// acquired locks share the transaction's exit paths.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction, releasing any advisory
	// locks acquired on it.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction, releasing any
	// advisory locks acquired on it.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Locks returns the LockManager bound to the current transaction.
	// Acquire must be called after Begin.
	Locks() LockManager

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// PickLineRepository returns a PickLineRepository bound to the current transaction.
	PickLineRepository() PickLineRepository

	// ShipmentRepository returns a ShipmentRepository bound to the current transaction.
	ShipmentRepository() ShipmentRepository

	// BackorderRepository returns a BackorderRepository bound to the current transaction.
	BackorderRepository() BackorderRepository

	// WorkQueueRepository returns a WorkQueueRepository bound to the current transaction.
	WorkQueueRepository() WorkQueueRepository
}
