package queries

import (
	"errors"
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery retrieves the orders currently waiting in the
// completion work queue, for the floor dashboard.
//
// Example:
//
//	query := NewGetPendingOrdersQuery()
//	pending, err := handler.Handle(ctx, query)
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates a query to retrieve queued orders.
// This is a parameterless query that fetches the whole queue.
func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// GetPendingOrdersQueryResponse represents one queued order.
type GetPendingOrdersQueryResponse struct {
	OrderID      int64
	OrderNumber  string
	Status       string
	CustomerCode string
	EnqueuedAt   time.Time
}
