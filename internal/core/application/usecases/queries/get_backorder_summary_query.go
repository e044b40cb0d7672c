package queries

import (
	"errors"

	"github.com/lushajj14/logline-wms-sub001/internal/pkg/guard"
)

var ErrGetBackorderSummaryQueryIsNotConstructed = errors.New(
	"GetBackorderSummaryQuery must be created via NewGetBackorderSummaryQuery constructor",
)

// GetBackorderSummaryQuery requests the count of unfulfilled backorders
// per warehouse. Parameterless: the summary always covers the whole
// ledger.
type GetBackorderSummaryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBackorderSummaryQuery creates a backorder summary query.
func NewGetBackorderSummaryQuery() GetBackorderSummaryQuery {
	return GetBackorderSummaryQuery{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetBackorderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetBackorderSummaryQueryIsNotConstructed)
}

// WarehouseBackorderCount is one row of the summary.
type WarehouseBackorderCount struct {
	WarehouseID int
	Pending     int64
}

// GetBackorderSummaryQueryResponse lists warehouses with unfulfilled
// backorders, ordered by warehouse id. Warehouses with nothing pending
// are omitted.
type GetBackorderSummaryQueryResponse struct {
	Warehouses []WarehouseBackorderCount
	Total      int64
}
