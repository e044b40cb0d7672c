package shipmentrepo

import (
	"context"
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/shipment"
	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
// All methods run on the connection they were constructed with; inside
// a unit of work that is the transaction.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// UpsertHeader inserts or updates the header for the
// (order number, trip date) key and returns its id from the same
// statement. On conflict the package count and customer snapshot are
// refreshed; pkgs_original and an already-set invoice root are
// preserved, so repeat completions never erase what the first one
// recorded.
func (r *GormShipmentRepository) UpsertHeader(ctx context.Context, header *shipment.Header) (int64, error) {
	if err := header.Validate(); err != nil {
		return 0, err
	}

	customer := header.Customer()
	row := r.db.WithContext(ctx).Raw(`
		INSERT INTO shipment_headers
			(order_no, trip_date, pkgs_total, pkgs_original,
			 customer_code, customer_name, region, address1, invoice_root)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (order_no, trip_date) DO UPDATE SET
			pkgs_total = EXCLUDED.pkgs_total,
			customer_code = EXCLUDED.customer_code,
			customer_name = EXCLUDED.customer_name,
			region = EXCLUDED.region,
			address1 = EXCLUDED.address1,
			invoice_root = CASE
				WHEN shipment_headers.invoice_root = '' THEN EXCLUDED.invoice_root
				ELSE shipment_headers.invoice_root
			END
		RETURNING id
	`, header.OrderNumber(), header.TripDate(), header.PkgsTotal(), header.PkgsTotal(),
		customer.Code, customer.Name, customer.Region, customer.Address1,
		header.InvoiceRoot()).Row()

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errs.NewObjectNotFoundError("shipmentHeader", header.OrderNumber())
	}

	return id, nil
}

// ListPackages returns the package records of a shipment, sorted by
// package number.
func (r *GormShipmentRepository) ListPackages(ctx context.Context, tripID int64) ([]shipment.Package, error) {
	var dtos []PackageDTO
	err := r.db.WithContext(ctx).
		Order("pkg_no").
		Find(&dtos, "trip_id = ?", tripID).Error
	if err != nil {
		return nil, err
	}

	packages := make([]shipment.Package, 0, len(dtos))
	for _, dto := range dtos {
		packages = append(packages, shipment.Package{
			PkgNo:      dto.PkgNo,
			Loaded:     dto.Loaded,
			LoadedBy:   dto.LoadedBy,
			LoadedTime: dto.LoadedTime,
		})
	}

	return packages, nil
}

// CreatePackage inserts one pending package record.
func (r *GormShipmentRepository) CreatePackage(ctx context.Context, tripID int64, pkgNo int) error {
	dto := PackageDTO{TripID: tripID, PkgNo: pkgNo}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// DeleteUnloadedPackage removes one package record only if it is not
// marked loaded. Returns errs.ErrObjectNotFound when the record is
// missing or loaded, so callers notice that nothing was deleted.
func (r *GormShipmentRepository) DeleteUnloadedPackage(ctx context.Context, tripID int64, pkgNo int) error {
	result := r.db.WithContext(ctx).
		Where("trip_id = ? AND pkg_no = ? AND NOT loaded", tripID, pkgNo).
		Delete(&PackageDTO{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipmentPackage", pkgNo)
	}

	return nil
}

// UpdateTotals records the effective package total on the header.
func (r *GormShipmentRepository) UpdateTotals(ctx context.Context, tripID int64, pkgsTotal int) error {
	result := r.db.WithContext(ctx).Model(&HeaderDTO{}).
		Where("id = ?", tripID).
		Update("pkgs_total", pkgsTotal)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipmentHeader", tripID)
	}

	return nil
}

func (r *GormShipmentRepository) RaiseTotals(ctx context.Context, tripID int64, floor int) error {
	// Zero rows affected means the total already covers floor, not a
	// missing header.
	return r.db.WithContext(ctx).Model(&HeaderDTO{}).
		Where("id = ? AND pkgs_total < ?", tripID, floor).
		Update("pkgs_total", floor).Error
}

// AddLine accumulates one shipment line: insert for a new
// (trip date, order number, item code) key, add the sent quantity onto
// the existing row otherwise.
func (r *GormShipmentRepository) AddLine(ctx context.Context, orderNumber string, tripDate time.Time, line shipment.Line) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO shipment_lines
			(trip_date, order_no, item_code, warehouse_id, invoiced_qty, qty_sent)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (trip_date, order_no, item_code) DO UPDATE SET
			qty_sent = shipment_lines.qty_sent + EXCLUDED.qty_sent,
			invoiced_qty = EXCLUDED.invoiced_qty
	`, tripDate, orderNumber, line.ItemCode.String(), line.WarehouseID,
		line.InvoicedQty, line.QtySent).Error
}

// MarkPackageLoaded flags a package as physically loaded.
func (r *GormShipmentRepository) MarkPackageLoaded(ctx context.Context, tripID int64, pkgNo int, loadedBy string, loadedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&PackageDTO{}).
		Where("trip_id = ? AND pkg_no = ?", tripID, pkgNo).
		Updates(map[string]any{
			"loaded":      true,
			"loaded_by":   loadedBy,
			"loaded_time": loadedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipmentPackage", pkgNo)
	}

	return nil
}

// FindLaggingHeaders returns headers whose recorded package total is
// below their loaded high-water mark.
func (r *GormShipmentRepository) FindLaggingHeaders(ctx context.Context) ([]ports.LaggingHeader, error) {
	lagging := make([]ports.LaggingHeader, 0)

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			h.id,
			h.pkgs_total,
			MAX(p.pkg_no)
		FROM shipment_headers h
		JOIN shipment_packages p ON p.trip_id = h.id AND p.loaded
		GROUP BY h.id, h.pkgs_total
		HAVING MAX(p.pkg_no) > h.pkgs_total
		ORDER BY h.id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var header ports.LaggingHeader
		if err = rows.Scan(&header.TripID, &header.PkgsTotal, &header.MaxLoaded); err != nil {
			return nil, err
		}
		lagging = append(lagging, header)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lagging, nil
}
