package queries

import (
	"context"
	"sort"

	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"
)

// GetBackorderSummaryQueryHandler aggregates the backorder ledger into
// a per-warehouse pending count. Consumed by the scheduled report job
// and available to read endpoints.
type GetBackorderSummaryQueryHandler struct {
	backorders ports.BackorderRepository
}

// NewGetBackorderSummaryQueryHandler creates a handler for backorder summaries.
func NewGetBackorderSummaryQueryHandler(backorders ports.BackorderRepository) GetBackorderSummaryQueryHandler {
	return GetBackorderSummaryQueryHandler{backorders: backorders}
}

// Handle executes the summary.
func (h GetBackorderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetBackorderSummaryQuery,
) (GetBackorderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBackorderSummaryQueryResponse{}, err
	}

	counts, err := h.backorders.PendingCountsByWarehouse(ctx)
	if err != nil {
		return GetBackorderSummaryQueryResponse{}, err
	}

	resp := GetBackorderSummaryQueryResponse{
		Warehouses: make([]WarehouseBackorderCount, 0, len(counts)),
	}
	for warehouseID, pending := range counts {
		resp.Warehouses = append(resp.Warehouses, WarehouseBackorderCount{
			WarehouseID: warehouseID,
			Pending:     pending,
		})
		resp.Total += pending
	}
	sort.Slice(resp.Warehouses, func(i, j int) bool {
		return resp.Warehouses[i].WarehouseID < resp.Warehouses[j].WarehouseID
	})

	return resp, nil
}
