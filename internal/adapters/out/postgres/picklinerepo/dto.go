// Package picklinerepo provides persistence for pick lines, including
// the single-statement atomic increment the scan accumulator relies on.
package picklinerepo

import (
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/kernel"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"
)

// PickLineDTO represents the database structure for pick lines. The
// unique (order, item) index is what the scan path's atomic UPDATE
// keys on.
type PickLineDTO struct {
	LineID          int64  `gorm:"primaryKey;autoIncrement"`
	OrderID         int64  `gorm:"uniqueIndex:idx_pick_lines_order_item"`
	ItemCode        string `gorm:"size:64;uniqueIndex:idx_pick_lines_order_item"`
	WarehouseID     int
	QuantityOrdered float64
	QuantityPicked  float64
}

// TableName specifies the database table name for pick line entities.
func (PickLineDTO) TableName() string {
	return "pick_lines"
}

func toDomain(dto PickLineDTO) (*order.PickLine, error) {
	code, err := kernel.NewItemCode(dto.ItemCode)
	if err != nil {
		return nil, err
	}

	return order.RestorePickLine(
		dto.LineID,
		dto.OrderID,
		code,
		dto.WarehouseID,
		dto.QuantityOrdered,
		dto.QuantityPicked,
	)
}
