// Package backorderrepo provides persistence for the backorder ledger.
package backorderrepo

import (
	"context"
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// BackorderDTO represents one shortfall record. The missing quantity is
// set, never summed: a repeat completion overwrites the previous value
// with the freshly computed shortfall.
type BackorderDTO struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	OrderNumber string `gorm:"size:32;uniqueIndex:idx_backorders_order_item"`
	ItemCode    string `gorm:"size:64;uniqueIndex:idx_backorders_order_item"`
	LineID      int64
	WarehouseID int  `gorm:"index"`
	QtyMissing  float64
	Fulfilled   bool `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the database table name for backorder entities.
func (BackorderDTO) TableName() string {
	return "backorders"
}

// GormBackorderRepository implements BackorderRepository using GORM.
type GormBackorderRepository struct {
	db *gorm.DB
}

// NewGormBackorderRepository creates a new GORM backorder repository.
func NewGormBackorderRepository(db *gorm.DB) *GormBackorderRepository {
	return &GormBackorderRepository{db: db}
}

// Upsert records a shortfall for (order number, item code). An existing
// record gets its missing quantity replaced and is reopened if it had
// been fulfilled; quantities are never accumulated across completions.
func (r *GormBackorderRepository) Upsert(ctx context.Context, backorder *order.Backorder) error {
	if err := backorder.Validate(); err != nil {
		return err
	}

	now := time.Now()
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO backorders
			(order_number, item_code, line_id, warehouse_id, qty_missing,
			 fulfilled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, FALSE, ?, ?)
		ON CONFLICT (order_number, item_code) DO UPDATE SET
			qty_missing = EXCLUDED.qty_missing,
			line_id = EXCLUDED.line_id,
			warehouse_id = EXCLUDED.warehouse_id,
			fulfilled = FALSE,
			updated_at = EXCLUDED.updated_at
	`, backorder.OrderNumber(), backorder.ItemCode().String(), backorder.LineID(),
		backorder.WarehouseID(), backorder.QtyMissing(), now, now).Error
}

// PendingCountsByWarehouse returns the number of unfulfilled backorders
// per warehouse.
func (r *GormBackorderRepository) PendingCountsByWarehouse(ctx context.Context) (map[int]int64, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT warehouse_id, COUNT(*)
		FROM backorders
		WHERE NOT fulfilled
		GROUP BY warehouse_id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var warehouseID int
		var count int64
		if err = rows.Scan(&warehouseID, &count); err != nil {
			return nil, err
		}
		counts[warehouseID] = count
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return counts, nil
}
