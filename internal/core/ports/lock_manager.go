package ports

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
)

// ErrLockTimeout is returned by LockManager.Acquire when another holder
// did not release the lock within the wait bound. Always recoverable by
// retrying the whole operation later; no mutation has begun.
var ErrLockTimeout = errors.New("lock acquisition timed out")

// LockAcquisitionError reports a backend lock-subsystem failure other
// than a plain timeout (deadlock victim, parameter error, connection
// loss). Code carries the backend's diagnostic code verbatim.
type LockAcquisitionError struct {
	Name  string
	Code  string
	Cause error
}

func (e *LockAcquisitionError) Error() string {
	return fmt.Sprintf("failed to acquire lock %q (code %s): %v", e.Name, e.Code, e.Cause)
}

func (e *LockAcquisitionError) Unwrap() error {
	return e.Cause
}

// CompletionLockName builds the advisory lock name serializing
// completion attempts for one order. Deterministic: every process
// contending for the same order computes the same name.
func CompletionLockName(orderID int64) string {
	return fmt.Sprintf("order:%d", orderID)
}

// ScanLockName builds the advisory lock name scoped to one
// (order, item) pair. The scan path itself relies on storage-native
// row atomicity and does not take this lock; the name exists for
// diagnostics and for callers that want to observe scan contention.
func ScanLockName(orderID int64, itemCode kernel.ItemCode) string {
	return fmt.Sprintf("order:%d:item:%s", orderID, itemCode.String())
}

// LockKey hashes a lock name to the signed 64-bit key space of the
// database's advisory-lock primitive. FNV-1a, computed in application
// code so independent callers always derive the same key from the same
// logical resource.
func LockKey(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return int64(h.Sum64())
}

// LockHandle represents scoped ownership of an acquired advisory lock.
// The handle is bound to the transaction it was acquired on; the lock
// is released when that transaction ends (commit or rollback), on every
// exit path. Release marks the handle released early and is idempotent.
type LockHandle struct {
	token    uuid.UUID
	name     string
	key      int64
	released bool
}

// NewLockHandle creates a handle for an acquired lock.
// Called by LockManager implementations only.
func NewLockHandle(name string, key int64) *LockHandle {
	return &LockHandle{token: uuid.New(), name: name, key: key}
}

// Token returns the handle's unique token, used to correlate acquire
// and release events in diagnostics.
func (h *LockHandle) Token() uuid.UUID { return h.token }

// Name returns the lock name the handle owns.
func (h *LockHandle) Name() string { return h.name }

// Key returns the 64-bit advisory key derived from the name.
func (h *LockHandle) Key() int64 { return h.key }

// Released reports whether the handle has been marked released.
func (h *LockHandle) Released() bool { return h == nil || h.released }

// MarkReleased marks the handle released. Safe to call multiple times.
func (h *LockHandle) MarkReleased() {
	if h != nil {
		h.released = true
	}
}

// LockStatus is a best-effort snapshot of who holds a lock. Inherently
// racy: by the time the caller inspects it the holder may be gone. For
// diagnostics and UI warnings only, never for correctness decisions.
type LockStatus struct {
	Name      string
	Key       int64
	SessionID int
	Granted   bool
}

// LockManager provides named, exclusive, timeout-bounded mutual
// exclusion scoped to a database transaction. Because operator stations
// run as independent processes with no shared memory, the locks live in
// the shared data store; any backend offering named, exclusive,
// timeout-bounded locks scoped to a transaction or session can
// implement this interface.
type LockManager interface {
	// Acquire requests exclusive ownership of the named lock on the
	// current transaction, blocking up to timeout.
	//
	// Returns ErrLockTimeout when the wait bound elapses and a
	// *LockAcquisitionError for any other backend failure. On success
	// the returned handle's scope is the enclosing transaction: the
	// lock is guaranteed released at commit or rollback.
	Acquire(ctx context.Context, name string, timeout time.Duration) (*LockHandle, error)

	// Release marks the handle released. Idempotent; a second release
	// is a no-op, not an error. The physical release happens at
	// transaction end.
	Release(ctx context.Context, handle *LockHandle) error

	// CheckStatus reports whether the named lock is currently held and
	// by which session. Best-effort and non-blocking; returns
	// (nil, nil) when the lock is not held.
	CheckStatus(ctx context.Context, name string) (*LockStatus, error)
}
