package models

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// geoPointColumns maps a GeoPoint value object to nullable coordinate
// columns. Both columns nil means the location was not captured.
func geoPointColumns(p valueobject.GeoPoint) (lat, lng *decimal.Decimal) {
	if !p.IsAvailable() {
		return nil, nil
	}
	la := p.Latitude()
	lo := p.Longitude()
	return &la, &lo
}

func geoPointFromColumns(lat, lng *decimal.Decimal) valueobject.GeoPoint {
	if lat == nil || lng == nil {
		return valueobject.UnavailableGeoPoint()
	}
	point, err := valueobject.NewGeoPoint(*lat, *lng)
	if err != nil {
		return valueobject.UnavailableGeoPoint()
	}
	return point
}

// SalesOrderModel is the persistence model for the SalesOrder aggregate root.
type SalesOrderModel struct {
	AgencyAggregateModel
	OrderNumber      string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_order_agency_number,priority:2"`
	CustomerID       uuid.UUID             `gorm:"type:uuid;not null;index"`
	CustomerName     string                `gorm:"type:varchar(200);not null"`
	Items            []SalesOrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	Subtotal         decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountPercent  decimal.Decimal       `gorm:"type:decimal(9,4);not null;default:0"`
	DiscountAmount   decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Total            decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	TotalInvoiced    decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status           sales.OrderStatus     `gorm:"type:varchar(30);not null;default:'PENDING';index"`
	RequiresApproval bool                  `gorm:"not null;default:false"`
	ApprovedBy       *uuid.UUID            `gorm:"type:uuid"`
	ApprovedAt       *time.Time
	RejectedBy       *uuid.UUID `gorm:"type:uuid"`
	RejectedAt       *time.Time
	RejectReason     string `gorm:"type:varchar(500)"`
	ClosedAt         *time.Time
	CancelledAt      *time.Time
	Remark           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToDomain converts the persistence model to a domain SalesOrder.
func (m *SalesOrderModel) ToDomain() *sales.SalesOrder {
	order := &sales.SalesOrder{
		AgencyAggregateRoot: m.ToDomainAgencyAggregateRoot(),
		OrderNumber:         m.OrderNumber,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		Subtotal:            m.Subtotal,
		DiscountPercent:     m.DiscountPercent,
		DiscountAmount:      m.DiscountAmount,
		Total:               m.Total,
		TotalInvoiced:       m.TotalInvoiced,
		Status:              m.Status,
		RequiresApproval:    m.RequiresApproval,
		ApprovedBy:          m.ApprovedBy,
		ApprovedAt:          m.ApprovedAt,
		RejectedBy:          m.RejectedBy,
		RejectedAt:          m.RejectedAt,
		RejectReason:        m.RejectReason,
		ClosedAt:            m.ClosedAt,
		CancelledAt:         m.CancelledAt,
		Remark:              m.Remark,
		Items:               make([]sales.SalesOrderItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain SalesOrder.
func (m *SalesOrderModel) FromDomain(o *sales.SalesOrder) {
	m.FromDomainAgencyAggregateRoot(o.AgencyAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.CustomerName = o.CustomerName
	m.Subtotal = o.Subtotal
	m.DiscountPercent = o.DiscountPercent
	m.DiscountAmount = o.DiscountAmount
	m.Total = o.Total
	m.TotalInvoiced = o.TotalInvoiced
	m.Status = o.Status
	m.RequiresApproval = o.RequiresApproval
	m.ApprovedBy = o.ApprovedBy
	m.ApprovedAt = o.ApprovedAt
	m.RejectedBy = o.RejectedBy
	m.RejectedAt = o.RejectedAt
	m.RejectReason = o.RejectReason
	m.ClosedAt = o.ClosedAt
	m.CancelledAt = o.CancelledAt
	m.Remark = o.Remark
	m.Items = make([]SalesOrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *SalesOrderItemModelFromDomain(&item)
	}
}

// SalesOrderModelFromDomain creates a new persistence model from a domain SalesOrder.
func SalesOrderModelFromDomain(o *sales.SalesOrder) *SalesOrderModel {
	m := &SalesOrderModel{}
	m.FromDomain(o)
	return m
}

// SalesOrderItemModel is the persistence model for the SalesOrderItem entity.
type SalesOrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Color       string          `gorm:"type:varchar(50)"`
	Size        string          `gorm:"type:varchar(50)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}

// ToDomain converts the persistence model to a domain SalesOrderItem.
func (m *SalesOrderItemModel) ToDomain() *sales.SalesOrderItem {
	return &sales.SalesOrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Color:       m.Color,
		Size:        m.Size,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// SalesOrderItemModelFromDomain creates a persistence model from a domain SalesOrderItem.
func SalesOrderItemModelFromDomain(i *sales.SalesOrderItem) *SalesOrderItemModel {
	return &SalesOrderItemModel{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Color:       i.Color,
		Size:        i.Size,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Amount:      i.Amount,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	AgencyAggregateModel
	InvoiceNumber     string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_agency_number,priority:2"`
	OrderID           *uuid.UUID         `gorm:"type:uuid;index"`
	CustomerID        uuid.UUID          `gorm:"type:uuid;not null;index"`
	CustomerName      string             `gorm:"type:varchar(200);not null"`
	Items             []InvoiceItemModel `gorm:"foreignKey:InvoiceID;references:ID"`
	Subtotal          decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountPercent   decimal.Decimal    `gorm:"type:decimal(9,4);not null;default:0"`
	DiscountAmount    decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Total             decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Signature         string             `gorm:"type:text;not null"`
	LocationLatitude  *decimal.Decimal   `gorm:"type:decimal(10,7)"`
	LocationLongitude *decimal.Decimal   `gorm:"type:decimal(10,7)"`
	Remark            string             `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *sales.Invoice {
	inv := &sales.Invoice{
		AgencyAggregateRoot: m.ToDomainAgencyAggregateRoot(),
		InvoiceNumber:       m.InvoiceNumber,
		OrderID:             m.OrderID,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		Subtotal:            m.Subtotal,
		DiscountPercent:     m.DiscountPercent,
		DiscountAmount:      m.DiscountAmount,
		Total:               m.Total,
		Signature:           valueobject.NewSignature(m.Signature),
		Location:            geoPointFromColumns(m.LocationLatitude, m.LocationLongitude),
		Remark:              m.Remark,
		Items:               make([]sales.InvoiceItem, len(m.Items)),
	}
	for i, item := range m.Items {
		inv.Items[i] = *item.ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice.
func (m *InvoiceModel) FromDomain(inv *sales.Invoice) {
	m.FromDomainAgencyAggregateRoot(inv.AgencyAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.OrderID = inv.OrderID
	m.CustomerID = inv.CustomerID
	m.CustomerName = inv.CustomerName
	m.Subtotal = inv.Subtotal
	m.DiscountPercent = inv.DiscountPercent
	m.DiscountAmount = inv.DiscountAmount
	m.Total = inv.Total
	m.Signature = inv.Signature.Data()
	m.LocationLatitude, m.LocationLongitude = geoPointColumns(inv.Location)
	m.Remark = inv.Remark
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = *InvoiceItemModelFromDomain(&item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *sales.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for the InvoiceItem entity.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Color       string          `gorm:"type:varchar(50)"`
	Size        string          `gorm:"type:varchar(50)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem.
func (m *InvoiceItemModel) ToDomain() *sales.InvoiceItem {
	return &sales.InvoiceItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Color:       m.Color,
		Size:        m.Size,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Amount:      m.Amount,
		CreatedAt:   m.CreatedAt,
	}
}

// InvoiceItemModelFromDomain creates a persistence model from a domain InvoiceItem.
func InvoiceItemModelFromDomain(i *sales.InvoiceItem) *InvoiceItemModel {
	return &InvoiceItemModel{
		ID:          i.ID,
		InvoiceID:   i.InvoiceID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Color:       i.Color,
		Size:        i.Size,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Amount:      i.Amount,
		CreatedAt:   i.CreatedAt,
	}
}

// SalesReturnModel is the persistence model for the SalesReturn aggregate root.
type SalesReturnModel struct {
	AgencyAggregateModel
	ReturnNumber      string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_return_agency_number,priority:2"`
	InvoiceID         *uuid.UUID             `gorm:"type:uuid;index"`
	CustomerID        uuid.UUID              `gorm:"type:uuid;not null;index"`
	CustomerName      string                 `gorm:"type:varchar(200);not null"`
	Items             []SalesReturnItemModel `gorm:"foreignKey:ReturnID;references:ID"`
	Total             decimal.Decimal        `gorm:"type:decimal(18,4);not null;default:0"`
	Reason            string                 `gorm:"type:varchar(500)"`
	Status            sales.ReturnStatus     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	LocationLatitude  *decimal.Decimal       `gorm:"type:decimal(10,7)"`
	LocationLongitude *decimal.Decimal       `gorm:"type:decimal(10,7)"`
	ProcessedAt       *time.Time
	RejectedAt        *time.Time
}

// TableName returns the table name for GORM
func (SalesReturnModel) TableName() string {
	return "sales_returns"
}

// ToDomain converts the persistence model to a domain SalesReturn.
func (m *SalesReturnModel) ToDomain() *sales.SalesReturn {
	ret := &sales.SalesReturn{
		AgencyAggregateRoot: m.ToDomainAgencyAggregateRoot(),
		ReturnNumber:        m.ReturnNumber,
		InvoiceID:           m.InvoiceID,
		CustomerID:          m.CustomerID,
		CustomerName:        m.CustomerName,
		Total:               m.Total,
		Reason:              m.Reason,
		Status:              m.Status,
		Location:            geoPointFromColumns(m.LocationLatitude, m.LocationLongitude),
		ProcessedAt:         m.ProcessedAt,
		RejectedAt:          m.RejectedAt,
		Items:               make([]sales.SalesReturnItem, len(m.Items)),
	}
	for i, item := range m.Items {
		ret.Items[i] = *item.ToDomain()
	}
	return ret
}

// FromDomain populates the persistence model from a domain SalesReturn.
func (m *SalesReturnModel) FromDomain(ret *sales.SalesReturn) {
	m.FromDomainAgencyAggregateRoot(ret.AgencyAggregateRoot)
	m.ReturnNumber = ret.ReturnNumber
	m.InvoiceID = ret.InvoiceID
	m.CustomerID = ret.CustomerID
	m.CustomerName = ret.CustomerName
	m.Total = ret.Total
	m.Reason = ret.Reason
	m.Status = ret.Status
	m.LocationLatitude, m.LocationLongitude = geoPointColumns(ret.Location)
	m.ProcessedAt = ret.ProcessedAt
	m.RejectedAt = ret.RejectedAt
	m.Items = make([]SalesReturnItemModel, len(ret.Items))
	for i, item := range ret.Items {
		m.Items[i] = *SalesReturnItemModelFromDomain(&item)
	}
}

// SalesReturnModelFromDomain creates a new persistence model from a domain SalesReturn.
func SalesReturnModelFromDomain(ret *sales.SalesReturn) *SalesReturnModel {
	m := &SalesReturnModel{}
	m.FromDomain(ret)
	return m
}

// SalesReturnItemModel is the persistence model for the SalesReturnItem entity.
type SalesReturnItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OriginalQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesReturnItemModel) TableName() string {
	return "sales_return_items"
}

// ToDomain converts the persistence model to a domain SalesReturnItem.
func (m *SalesReturnItemModel) ToDomain() *sales.SalesReturnItem {
	return &sales.SalesReturnItem{
		ID:               m.ID,
		ReturnID:         m.ReturnID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		Quantity:         m.Quantity,
		OriginalQuantity: m.OriginalQuantity,
		UnitPrice:        m.UnitPrice,
		Amount:           m.Amount,
		CreatedAt:        m.CreatedAt,
	}
}

// SalesReturnItemModelFromDomain creates a persistence model from a domain SalesReturnItem.
func SalesReturnItemModelFromDomain(i *sales.SalesReturnItem) *SalesReturnItemModel {
	return &SalesReturnItemModel{
		ID:               i.ID,
		ReturnID:         i.ReturnID,
		ProductID:        i.ProductID,
		ProductName:      i.ProductName,
		Quantity:         i.Quantity,
		OriginalQuantity: i.OriginalQuantity,
		UnitPrice:        i.UnitPrice,
		Amount:           i.Amount,
		CreatedAt:        i.CreatedAt,
	}
}

// DeliveryModel is the persistence model for the Delivery aggregate root.
type DeliveryModel struct {
	AgencyAggregateModel
	InvoiceID         uuid.UUID            `gorm:"type:uuid;not null;index"`
	AgentID           uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status            sales.DeliveryStatus `gorm:"type:varchar(25);not null;default:'PENDING';index"`
	LocationLatitude  *decimal.Decimal     `gorm:"type:decimal(10,7)"`
	LocationLongitude *decimal.Decimal     `gorm:"type:decimal(10,7)"`
	Signature         string               `gorm:"type:text"`
	ReceiverName      string               `gorm:"type:varchar(200)"`
	ReceiverPhone     string               `gorm:"type:varchar(50)"`
	DispatchedAt      *time.Time
	DeliveredAt       *time.Time
	FailedAt          *time.Time
	FailureReason     string `gorm:"type:varchar(500)"`
	CancelledAt       *time.Time
}

// TableName returns the table name for GORM
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// ToDomain converts the persistence model to a domain Delivery.
func (m *DeliveryModel) ToDomain() *sales.Delivery {
	return &sales.Delivery{
		AgencyAggregateRoot: m.ToDomainAgencyAggregateRoot(),
		InvoiceID:           m.InvoiceID,
		AgentID:             m.AgentID,
		Status:              m.Status,
		Location:            geoPointFromColumns(m.LocationLatitude, m.LocationLongitude),
		Signature:           valueobject.NewSignature(m.Signature),
		ReceiverName:        m.ReceiverName,
		ReceiverPhone:       m.ReceiverPhone,
		DispatchedAt:        m.DispatchedAt,
		DeliveredAt:         m.DeliveredAt,
		FailedAt:            m.FailedAt,
		FailureReason:       m.FailureReason,
		CancelledAt:         m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain Delivery.
func (m *DeliveryModel) FromDomain(d *sales.Delivery) {
	m.FromDomainAgencyAggregateRoot(d.AgencyAggregateRoot)
	m.InvoiceID = d.InvoiceID
	m.AgentID = d.AgentID
	m.Status = d.Status
	m.LocationLatitude, m.LocationLongitude = geoPointColumns(d.Location)
	m.Signature = d.Signature.Data()
	m.ReceiverName = d.ReceiverName
	m.ReceiverPhone = d.ReceiverPhone
	m.DispatchedAt = d.DispatchedAt
	m.DeliveredAt = d.DeliveredAt
	m.FailedAt = d.FailedAt
	m.FailureReason = d.FailureReason
	m.CancelledAt = d.CancelledAt
}

// DeliveryModelFromDomain creates a new persistence model from a domain Delivery.
func DeliveryModelFromDomain(d *sales.Delivery) *DeliveryModel {
	m := &DeliveryModel{}
	m.FromDomain(d)
	return m
}
