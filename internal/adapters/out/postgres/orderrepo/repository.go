package orderrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"
	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// GetForUpdate retrieves an order by id under a row-level write lock.
// The lock holds until the enclosing transaction ends, so the status
// read here cannot be invalidated by a concurrent completion.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetHeaderSnapshot fetches the header and customer fields frozen onto
// the shipment document. A missing customer degrades to empty fields.
func (r *GormOrderRepository) GetHeaderSnapshot(ctx context.Context, id int64) (ports.OrderHeaderSnapshot, error) {
	row := r.db.WithContext(ctx).Raw(`
		SELECT
			o.order_number,
			COALESCE(c.code, ''),
			COALESCE(c.name, ''),
			COALESCE(c.region, ''),
			COALESCE(c.address1, '')
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE o.id = ?
	`, id).Row()

	var snapshot ports.OrderHeaderSnapshot
	err := row.Scan(
		&snapshot.OrderNumber,
		&snapshot.CustomerCode,
		&snapshot.CustomerName,
		&snapshot.Region,
		&snapshot.Address1,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.OrderHeaderSnapshot{}, errs.NewObjectNotFoundError("order", id)
	}
	if err != nil {
		return ports.OrderHeaderSnapshot{}, err
	}

	return snapshot, nil
}

// FindInvoiceRoot returns the number of the most recent invoice issued
// for the order, or an empty string when none exists.
func (r *GormOrderRepository) FindInvoiceRoot(ctx context.Context, id int64) (string, error) {
	row := r.db.WithContext(ctx).Raw(`
		SELECT invoice_no
		FROM invoices
		WHERE order_id = ?
		ORDER BY id DESC
		LIMIT 1
	`, id).Row()

	var invoiceNo string
	err := row.Scan(&invoiceNo)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return invoiceNo, nil
}

// UpdateCompleted persists the completed order's status and audit
// fields.
func (r *GormOrderRepository) UpdateCompleted(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Status() != order.Completed {
		return errs.NewValueIsInvalidError("status")
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":          dto.Status,
			"completed_by":    dto.CompletedBy,
			"completion_note": dto.CompletionNote,
			"package_note":    dto.PackageNote,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	return nil
}
