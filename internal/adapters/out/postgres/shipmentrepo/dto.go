// Package shipmentrepo provides persistence for the shipment aggregate:
// the header keyed by (order number, trip date), its package records
// and its accumulated per-item lines.
package shipmentrepo

import (
	"time"
)

// HeaderDTO represents the shipment header row. PkgsOriginal keeps the
// package count of the first completion; repeat completions update
// PkgsTotal but never PkgsOriginal, preserving the audit trail of what
// was first declared.
type HeaderDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	OrderNo      string    `gorm:"size:32;uniqueIndex:idx_shipment_headers_order_date"`
	TripDate     time.Time `gorm:"uniqueIndex:idx_shipment_headers_order_date"`
	PkgsTotal    int
	PkgsOriginal int
	CustomerCode string `gorm:"size:32"`
	CustomerName string `gorm:"size:60"`
	Region       string `gorm:"size:32"`
	Address1     string `gorm:"size:128"`
	InvoiceRoot  string `gorm:"size:32"`
}

// TableName specifies the database table name for shipment headers.
func (HeaderDTO) TableName() string {
	return "shipment_headers"
}

// PackageDTO represents one package record of a shipment. Loaded
// packages carry who loaded them and when; unloaded ones are free to
// be deleted by synchronization.
type PackageDTO struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	TripID     int64  `gorm:"uniqueIndex:idx_shipment_packages_trip_pkg"`
	PkgNo      int    `gorm:"uniqueIndex:idx_shipment_packages_trip_pkg"`
	Loaded     bool   `gorm:"index"`
	LoadedBy   string `gorm:"size:64"`
	LoadedTime *time.Time
}

// TableName specifies the database table name for shipment packages.
func (PackageDTO) TableName() string {
	return "shipment_packages"
}

// LineDTO represents one accumulated shipment line. QtySent grows with
// every completion run that ships the item on the same trip date.
type LineDTO struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	TripDate    time.Time `gorm:"uniqueIndex:idx_shipment_lines_key"`
	OrderNo     string    `gorm:"size:32;uniqueIndex:idx_shipment_lines_key"`
	ItemCode    string    `gorm:"size:64;uniqueIndex:idx_shipment_lines_key"`
	WarehouseID int
	InvoicedQty float64
	QtySent     float64
}

// TableName specifies the database table name for shipment lines.
func (LineDTO) TableName() string {
	return "shipment_lines"
}
