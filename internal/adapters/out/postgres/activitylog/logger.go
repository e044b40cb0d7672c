// Package activitylog persists fire-and-forget audit entries for scans
// and completions. Failures are logged and swallowed: the audit trail
// must never abort the operation it documents.
package activitylog

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"

	"gorm.io/gorm"
)

// ActivityLogDTO represents one audit record.
type ActivityLogDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    int64     `gorm:"index"`
	ItemCode   string    `gorm:"size:64"`
	Action     string    `gorm:"size:32;index"`
	Detail     string    `gorm:"size:256"`
	ActingUser string    `gorm:"size:64"`
	CreatedAt  time.Time
}

// TableName specifies the database table name for audit entries.
func (ActivityLogDTO) TableName() string {
	return "activity_log"
}

// GormActivityLogger implements ports.ActivityLogger against the
// activity_log table. It writes on the main connection, outside the
// caller's transaction, so an audit row survives even when the business
// transaction rolls back (an over-scan is worth recording regardless).
type GormActivityLogger struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGormActivityLogger creates an activity logger.
func NewGormActivityLogger(db *gorm.DB, logger *slog.Logger) *GormActivityLogger {
	return &GormActivityLogger{
		db:     db,
		logger: logger.With("component", "activity_log"),
	}
}

// Record persists one audit entry. Errors are logged, never returned.
func (l *GormActivityLogger) Record(ctx context.Context, entry ports.ActivityEntry) {
	dto := ActivityLogDTO{
		ID:         uuid.New(),
		OrderID:    entry.OrderID,
		ItemCode:   entry.ItemCode,
		Action:     entry.Action,
		Detail:     entry.Detail,
		ActingUser: entry.ActingUser,
		CreatedAt:  time.Now(),
	}

	if err := l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		l.logger.Warn("failed to persist activity entry",
			"action", entry.Action, "orderId", entry.OrderID, "error", err)
	}
}
