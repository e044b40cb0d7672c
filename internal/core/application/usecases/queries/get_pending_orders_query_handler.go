package queries

import (
	"context"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetPendingOrdersQueryHandler reads the completion work queue joined
// with order headers. Queue entries whose order has vanished are
// skipped by the join rather than reported as errors.
type GetPendingOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingOrdersQueryHandler creates a handler for queue queries.
func NewGetPendingOrdersQueryHandler(db *gorm.DB) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest first so the
// dashboard shows the longest-waiting orders on top.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pending := make([]GetPendingOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			COALESCE(c.code, ''),
			q.enqueued_at
		FROM work_queue q
		JOIN orders o ON o.id = q.order_id
		LEFT JOIN customers c ON c.id = o.customer_id
		ORDER BY q.enqueued_at, o.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingOrdersQueryResponse
		var status int
		err = rows.Scan(
			&resp.OrderID,
			&resp.OrderNumber,
			&status,
			&resp.CustomerCode,
			&resp.EnqueuedAt,
		)
		if err != nil {
			return nil, err
		}
		resp.Status = order.Status(status).String()
		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
