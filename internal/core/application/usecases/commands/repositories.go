// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence; expected business outcomes
// are returned as closed result variants, never as errors.
package commands

import (
	"context"

	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PickLineRepoFactory provides access to the pick line repository within a transaction.
	PickLineRepoFactory interface {
		PickLineRepository() ports.PickLineRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// BackorderRepoFactory provides access to the backorder ledger within a transaction.
	BackorderRepoFactory interface {
		BackorderRepository() ports.BackorderRepository
	}

	// WorkQueueRepoFactory provides access to the work queue within a transaction.
	WorkQueueRepoFactory interface {
		WorkQueueRepository() ports.WorkQueueRepository
	}

	// LockFactory provides the advisory lock manager bound to the transaction.
	LockFactory interface {
		Locks() ports.LockManager
	}

	// ScanUoW manages transactions for the atomic scan path.
	// The scan path needs only the pick line repository; serialization
	// comes from the storage engine's row-update atomicity, not from
	// an advisory lock.
	ScanUoW interface {
		TxManager
		PickLineRepoFactory
	}

	// ScanUoWFactory creates scan unit of work instances.
	ScanUoWFactory interface {
		Create() ScanUoW
	}

	// CompletionUoW manages the completion transaction across every
	// aggregate the coordinator touches, plus the advisory lock
	// serializing completion attempts per order.
	CompletionUoW interface {
		TxManager
		LockFactory
		OrderRepoFactory
		ShipmentRepoFactory
		BackorderRepoFactory
		WorkQueueRepoFactory
	}

	// CompletionUoWFactory creates completion unit of work instances.
	CompletionUoWFactory interface {
		Create() CompletionUoW
	}

	// ShipmentUoW manages transactions for shipment-only operations
	// (package loading).
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates shipment unit of work instances.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}
)
