// Package queries contains read-only operations for retrieving system
// state. Implements the Query pattern for the read side of the CQRS
// architecture. Query handlers bypass the domain model and read
// projections directly for performance.
package queries

import (
	"errors"
	"fmt"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/guard"
)

var ErrGetItemQuantitiesQueryIsNotConstructed = errors.New(
	"GetItemQuantitiesQuery must be created via NewGetItemQuantitiesQuery constructor",
)

// GetItemQuantitiesQuery retrieves the picked and ordered quantities of
// one pick line. The answer is a snapshot of the latest committed
// state: with scanning in flight it may be stale by the time the
// terminal renders it.
//
// Example:
//
//	query, err := NewGetItemQuantitiesQuery(1001, "SKU-A")
//	if err != nil {
//	    return err
//	}
//	resp, err := handler.Handle(ctx, query)
type GetItemQuantitiesQuery struct {
	orderID  int64
	itemCode kernel.ItemCode

	guard guard.ConstructorGuard
}

// NewGetItemQuantitiesQuery creates a validated quantity lookup query.
func NewGetItemQuantitiesQuery(orderID int64, itemCode string) (GetItemQuantitiesQuery, error) {
	if orderID <= 0 {
		return GetItemQuantitiesQuery{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%d is not greater than 0", orderID))
	}
	code, err := kernel.NewItemCode(itemCode)
	if err != nil {
		return GetItemQuantitiesQuery{}, err
	}

	return GetItemQuantitiesQuery{
		orderID:  orderID,
		itemCode: code,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order the line belongs to.
func (q GetItemQuantitiesQuery) OrderID() int64 { return q.orderID }

// ItemCode returns the normalized item code.
func (q GetItemQuantitiesQuery) ItemCode() kernel.ItemCode { return q.itemCode }

// Validate ensures the query was created through the constructor.
func (q GetItemQuantitiesQuery) Validate() error {
	return q.guard.Validate(ErrGetItemQuantitiesQueryIsNotConstructed)
}

// GetItemQuantitiesQueryResponse carries one pick line's quantities.
// Missing is floored at zero: over-scanned lines report no shortfall.
type GetItemQuantitiesQueryResponse struct {
	OrderID         int64
	ItemCode        string
	QuantityPicked  float64
	QuantityOrdered float64
	Missing         float64
}
