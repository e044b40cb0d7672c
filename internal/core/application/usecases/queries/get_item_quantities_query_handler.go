package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetItemQuantitiesQueryHandler reads one pick line's quantities
// directly from the database, bypassing the domain model.
type GetItemQuantitiesQueryHandler struct {
	db *gorm.DB
}

// NewGetItemQuantitiesQueryHandler creates a handler for quantity lookups.
func NewGetItemQuantitiesQueryHandler(db *gorm.DB) GetItemQuantitiesQueryHandler {
	return GetItemQuantitiesQueryHandler{db: db}
}

// Handle executes the lookup. Returns errs.ErrObjectNotFound when no
// pick line exists for the (order, item) pair.
func (h GetItemQuantitiesQueryHandler) Handle(
	ctx context.Context,
	query GetItemQuantitiesQuery,
) (GetItemQuantitiesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetItemQuantitiesQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			quantity_picked,
			quantity_ordered
		FROM pick_lines
		WHERE order_id = ? AND item_code = ?
	`, query.OrderID(), query.ItemCode().String()).Row()

	var picked, ordered float64
	err := row.Scan(&picked, &ordered)
	if errors.Is(err, sql.ErrNoRows) {
		return GetItemQuantitiesQueryResponse{},
			errs.NewObjectNotFoundError("itemCode", query.ItemCode().String())
	}
	if err != nil {
		return GetItemQuantitiesQueryResponse{}, err
	}

	missing := ordered - picked
	if missing < 0 {
		missing = 0
	}

	return GetItemQuantitiesQueryResponse{
		OrderID:         query.OrderID(),
		ItemCode:        query.ItemCode().String(),
		QuantityPicked:  picked,
		QuantityOrdered: ordered,
		Missing:         missing,
	}, nil
}
