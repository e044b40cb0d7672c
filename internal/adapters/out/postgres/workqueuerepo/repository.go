// Package workqueuerepo provides persistence for the pending-completion
// work queue.
package workqueuerepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkQueueDTO represents one queue marker. The order id is the primary
// key, so enqueueing is naturally idempotent.
type WorkQueueDTO struct {
	OrderID    int64 `gorm:"primaryKey"`
	EnqueuedAt time.Time
}

// TableName specifies the database table name for queue markers.
func (WorkQueueDTO) TableName() string {
	return "work_queue"
}

// GormWorkQueueRepository implements WorkQueueRepository using GORM.
type GormWorkQueueRepository struct {
	db *gorm.DB
}

// NewGormWorkQueueRepository creates a new GORM work queue repository.
func NewGormWorkQueueRepository(db *gorm.DB) *GormWorkQueueRepository {
	return &GormWorkQueueRepository{db: db}
}

// Add enqueues an order awaiting completion. Re-adding a queued order
// keeps the original enqueue time.
func (r *GormWorkQueueRepository) Add(ctx context.Context, orderID int64) error {
	dto := WorkQueueDTO{OrderID: orderID, EnqueuedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}

// Delete removes the order's queue entry. Deleting an absent entry is
// not an error: the queue marker may already be gone when a completion
// retries.
func (r *GormWorkQueueRepository) Delete(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&WorkQueueDTO{}).Error
}
