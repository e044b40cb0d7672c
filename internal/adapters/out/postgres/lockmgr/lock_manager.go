// Package lockmgr implements the advisory lock manager on top of
// Postgres transaction-scoped advisory locks.
//
// Lock names are hashed to 64-bit keys in application code, so any two
// processes contending for the same logical resource block each other
// regardless of which station they run on. The locks are taken with
// pg_advisory_xact_lock on the unit of work's transaction connection:
// Postgres releases them at commit or rollback, which covers every
// exit path including crashes that drop the connection.
package lockmgr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"

	"gorm.io/gorm"
)

// SQLSTATE codes the lock path cares about. Everything else surfaces
// as a generic acquisition failure with the code attached.
const (
	lockNotAvailableCode = "55P03"
	deadlockDetectedCode = "40P01"
)

// GormLockManager implements ports.LockManager against Postgres.
// Acquire must run on a transaction connection; CheckStatus works on
// any connection.
type GormLockManager struct {
	db *gorm.DB
}

// NewGormLockManager creates a lock manager on the given connection.
// Pass the unit of work's transaction for Acquire, or the plain
// connection for status probes.
func NewGormLockManager(db *gorm.DB) *GormLockManager {
	return &GormLockManager{db: db}
}

// Acquire takes the named advisory lock on the current transaction,
// waiting up to timeout. The wait bound rides on Postgres lock_timeout,
// set locally so it cannot leak into other statements of the
// transaction.
func (m *GormLockManager) Acquire(ctx context.Context, name string, timeout time.Duration) (*ports.LockHandle, error) {
	key := ports.LockKey(name)

	// SET does not take bind parameters; the value is a computed
	// integer, never caller input.
	timeoutMs := timeout.Milliseconds()
	if timeoutMs < 1 {
		timeoutMs = 1
	}
	err := m.db.WithContext(ctx).Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", timeoutMs)).Error
	if err != nil {
		return nil, m.acquisitionError(name, err)
	}

	acquireErr := m.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", key).Error

	// Restore the default before reporting the outcome, so the rest of
	// the transaction is not running under the lock wait bound.
	if resetErr := m.db.WithContext(ctx).Exec("SET LOCAL lock_timeout = DEFAULT").Error; resetErr != nil && acquireErr == nil {
		return nil, m.acquisitionError(name, resetErr)
	}

	if acquireErr != nil {
		var pgErr *pgconn.PgError
		if errors.As(acquireErr, &pgErr) && pgErr.Code == lockNotAvailableCode {
			return nil, ports.ErrLockTimeout
		}
		return nil, m.acquisitionError(name, acquireErr)
	}

	return ports.NewLockHandle(name, key), nil
}

// Release marks the handle released. The physical lock stays with the
// transaction and is released by Postgres at commit or rollback;
// calling Release twice is a no-op.
func (m *GormLockManager) Release(_ context.Context, handle *ports.LockHandle) error {
	handle.MarkReleased()
	return nil
}

// CheckStatus probes pg_locks for the named advisory lock. Returns
// (nil, nil) when nobody holds or waits for it. The snapshot is
// inherently racy and meant for diagnostics only.
func (m *GormLockManager) CheckStatus(ctx context.Context, name string) (*ports.LockStatus, error) {
	key := ports.LockKey(name)

	// A 64-bit advisory key is exposed in pg_locks as the
	// (classid, objid) pair of its high and low 32 bits.
	classID := uint32(uint64(key) >> 32)
	objID := uint32(uint64(key))

	row := m.db.WithContext(ctx).Raw(`
		SELECT
			a.pid,
			l.granted
		FROM pg_locks l
		JOIN pg_stat_activity a ON a.pid = l.pid
		WHERE l.locktype = 'advisory'
		  AND l.classid = ?
		  AND l.objid = ?
		  AND l.objsubid = 1
		ORDER BY l.granted DESC
		LIMIT 1
	`, int64(classID), int64(objID)).Row()

	var pid int
	var granted bool
	err := row.Scan(&pid, &granted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check status of lock %q: %w", name, err)
	}

	return &ports.LockStatus{
		Name:      name,
		Key:       key,
		SessionID: pid,
		Granted:   granted,
	}, nil
}

func (m *GormLockManager) acquisitionError(name string, cause error) *ports.LockAcquisitionError {
	code := ""
	var pgErr *pgconn.PgError
	if errors.As(cause, &pgErr) {
		code = pgErr.Code
	}
	return &ports.LockAcquisitionError{Name: name, Code: code, Cause: cause}
}
