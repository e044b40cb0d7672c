package queries

import (
	"errors"
	"fmt"

	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/guard"
)

var ErrCheckCompletionLockQueryIsNotConstructed = errors.New(
	"CheckCompletionLockQuery must be created via NewCheckCompletionLockQuery constructor",
)

// CheckCompletionLockQuery asks whether another station currently holds
// the completion lock of an order. The answer is a best-effort
// diagnostic snapshot: by the time it is displayed the holder may be
// gone. Never use it to decide whether to attempt completion; the
// completion command takes the lock itself.
type CheckCompletionLockQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

// NewCheckCompletionLockQuery creates a validated lock status query.
func NewCheckCompletionLockQuery(orderID int64) (CheckCompletionLockQuery, error) {
	if orderID <= 0 {
		return CheckCompletionLockQuery{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not greater than 0", orderID))
	}

	return CheckCompletionLockQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order whose completion lock is inspected.
func (q CheckCompletionLockQuery) OrderID() int64 { return q.orderID }

// Validate ensures the query was created through the constructor.
func (q CheckCompletionLockQuery) Validate() error {
	return q.guard.Validate(ErrCheckCompletionLockQueryIsNotConstructed)
}

// CheckCompletionLockQueryResponse reports the lock's observed state.
// SessionID is the backend session of the holder, zero when not held.
type CheckCompletionLockQueryResponse struct {
	OrderID   int64
	LockName  string
	Held      bool
	SessionID int
}
