package queries

import (
	"context"

	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"
)

// CheckCompletionLockQueryHandler inspects the advisory lock state for
// an order's completion lock through the lock manager's non-blocking
// status probe.
type CheckCompletionLockQueryHandler struct {
	locks ports.LockManager
}

// NewCheckCompletionLockQueryHandler creates a handler for lock status queries.
// The lock manager must not be bound to a transaction; the probe runs
// on a plain connection.
func NewCheckCompletionLockQueryHandler(locks ports.LockManager) CheckCompletionLockQueryHandler {
	return CheckCompletionLockQueryHandler{locks: locks}
}

// Handle executes the probe.
func (h CheckCompletionLockQueryHandler) Handle(
	ctx context.Context,
	query CheckCompletionLockQuery,
) (CheckCompletionLockQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckCompletionLockQueryResponse{}, err
	}

	name := ports.CompletionLockName(query.OrderID())
	resp := CheckCompletionLockQueryResponse{
		OrderID:  query.OrderID(),
		LockName: name,
	}

	status, err := h.locks.CheckStatus(ctx, name)
	if err != nil {
		return CheckCompletionLockQueryResponse{}, err
	}
	if status != nil {
		resp.Held = status.Granted
		resp.SessionID = status.SessionID
	}

	return resp, nil
}
