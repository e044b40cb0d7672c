package picklinerepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPickLineRepository implements PickLineRepository using GORM.
type GormPickLineRepository struct {
	db *gorm.DB
}

// NewGormPickLineRepository creates a new GORM pick line repository.
func NewGormPickLineRepository(db *gorm.DB) *GormPickLineRepository {
	return &GormPickLineRepository{db: db}
}

// IncrementPicked adds delta to the picked quantity of one line as a
// single UPDATE and returns the authoritative post-increment values
// from the same statement. Concurrent increments on the same row
// serialize on the row lock; there is no read-modify-write window.
func (r *GormPickLineRepository) IncrementPicked(
	ctx context.Context,
	orderID int64,
	itemCode kernel.ItemCode,
	delta float64,
) (float64, float64, error) {
	row := r.db.WithContext(ctx).Raw(`
		UPDATE pick_lines
		SET quantity_picked = quantity_picked + ?
		WHERE order_id = ? AND item_code = ?
		RETURNING quantity_picked, quantity_ordered
	`, delta, orderID, itemCode.String()).Row()

	var picked, ordered float64
	err := row.Scan(&picked, &ordered)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, errs.NewObjectNotFoundError("pickLine", itemCode.String())
	}
	if err != nil {
		return 0, 0, err
	}

	return picked, ordered, nil
}

// GetQuantities returns the latest committed quantities of one line.
func (r *GormPickLineRepository) GetQuantities(
	ctx context.Context,
	orderID int64,
	itemCode kernel.ItemCode,
) (float64, float64, error) {
	var dto PickLineDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND item_code = ?", orderID, itemCode.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, errs.NewObjectNotFoundError("pickLine", itemCode.String())
		}
		return 0, 0, err
	}

	return dto.QuantityPicked, dto.QuantityOrdered, nil
}

// ListByOrder returns all pick lines of an order, sorted by line id.
func (r *GormPickLineRepository) ListByOrder(ctx context.Context, orderID int64) ([]*order.PickLine, error) {
	var dtos []PickLineDTO
	err := r.db.WithContext(ctx).
		Order("line_id").
		Find(&dtos, "order_id = ?", orderID).Error
	if err != nil {
		return nil, err
	}

	lines := make([]*order.PickLine, 0, len(dtos))
	for _, dto := range dtos {
		line, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, nil
}
