// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. This package implements the repository pattern
// for the order aggregate, handling the conversion between domain
// entities and database representations.
package orderrepo

import (
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order
// aggregates, indexed for lookups by status and customer.
type OrderDTO struct {
	ID             int64  `gorm:"primaryKey"`
	OrderNumber    string `gorm:"size:32;uniqueIndex"`
	Status         int    `gorm:"index"`
	CustomerID     *int64 `gorm:"index"`
	CompletedBy    string `gorm:"size:64"`
	CompletionNote string `gorm:"size:128"`
	PackageNote    string `gorm:"size:128"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the customer master data joined onto orders
// when building the shipment header snapshot.
type CustomerDTO struct {
	ID       int64  `gorm:"primaryKey"`
	Code     string `gorm:"size:32;uniqueIndex"`
	Name     string `gorm:"size:60"`
	Region   string `gorm:"size:32"`
	Address1 string `gorm:"size:128"`
}

// TableName specifies the database table name for customer entities.
func (CustomerDTO) TableName() string {
	return "customers"
}

// InvoiceDTO represents an invoice issued for an order. Used only for
// the best-effort invoice-root lookup during completion.
type InvoiceDTO struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `gorm:"index"`
	InvoiceNo string `gorm:"size:32"`
	TrCode    int
	CreatedAt time.Time
}

// TableName specifies the database table name for invoice entities.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// fromDomain converts an order domain aggregate to its database
// representation. The customer link is managed outside the aggregate
// and is not touched by aggregate writes.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:             aggregate.ID(),
		OrderNumber:    aggregate.Number(),
		Status:         int(aggregate.Status()),
		CompletedBy:    aggregate.CompletedBy(),
		CompletionNote: aggregate.CompletionNote(),
		PackageNote:    aggregate.PackageNote(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	return order.RestoreOrder(
		dto.ID,
		dto.OrderNumber,
		order.Status(dto.Status),
		dto.CompletedBy,
		dto.CompletionNote,
		dto.PackageNote,
	)
}
