// Package postgres provides the GORM-based implementation of the Unit
// of Work pattern. The Unit of Work pattern maintains the set of
// repositories participating in one business transaction and
// coordinates writing out changes atomically.
//
// Key Features:
//   - Transaction management across multiple repositories
//   - Advisory lock manager bound to the same transaction, so locks
//     release automatically at commit or rollback
//   - Proper isolation between concurrent operations
//   - Repository factory pattern for consistent database connections
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	handle, err := uow.Locks().Acquire(ctx, name, 5*time.Second)
//	if err != nil {
//	    return err
//	}
//
//	if err := uow.OrderRepository().UpdateCompleted(ctx, order); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - Advisory locks acquired through Locks() are scoped to the
//     transaction and cannot outlive it
package postgres

import (
	"context"

	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/backorderrepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/lockmgr"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/picklinerepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/shipmentrepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/workqueuerepo"
	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using a GORM
// database connection. Each business operation gets a fresh instance
// with its own transaction state.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of
// work instances. The provided connection is shared by all instances;
// transactions are opened per unit of work.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the
// repositories of the fulfillment domain. Repositories obtained from
// an active unit of work run inside its transaction; obtained without
// Begin they fall back to the main connection for immediate execution.
//
// The advisory lock manager returned by Locks shares the transaction,
// which is what guarantees lock release on every exit path: commit and
// rollback both end the transaction, and transaction end releases the
// locks.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls on the same instance are safe and will not create
// nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes all changes made within the current transaction and
// releases any advisory locks acquired on it. After commit the
// transaction is closed and cannot be reused.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction and
// releases any advisory locks acquired on it. Calling Rollback after a
// successful Commit returns gorm.ErrInvalidTransaction, which callers
// running rollback in a defer are expected to ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// Locks returns the advisory lock manager bound to the current
// transaction. Locks acquired through it live exactly as long as the
// transaction does.
func (uow *GormUnitOfWork) Locks() ports.LockManager {
	return lockmgr.NewGormLockManager(uow.conn())
}

// OrderRepository provides order persistence within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// PickLineRepository provides pick line persistence within the unit of work.
func (uow *GormUnitOfWork) PickLineRepository() ports.PickLineRepository {
	return picklinerepo.NewGormPickLineRepository(uow.conn())
}

// ShipmentRepository provides shipment persistence within the unit of work.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn())
}

// BackorderRepository provides backorder persistence within the unit of work.
func (uow *GormUnitOfWork) BackorderRepository() ports.BackorderRepository {
	return backorderrepo.NewGormBackorderRepository(uow.conn())
}

// WorkQueueRepository provides work queue persistence within the unit of work.
func (uow *GormUnitOfWork) WorkQueueRepository() ports.WorkQueueRepository {
	return workqueuerepo.NewGormWorkQueueRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
