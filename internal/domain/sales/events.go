package sales

import (
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeInvoice     = "Invoice"
	AggregateTypeSalesReturn = "SalesReturn"
	AggregateTypeDelivery    = "Delivery"
)

// Event type constants
const (
	EventTypeInvoiceIssued        = "InvoiceIssued"
	EventTypeSalesReturnProcessed = "SalesReturnProcessed"
	EventTypeDeliveryCompleted    = "DeliveryCompleted"
)

// InvoiceLineInfo carries item data on invoice and return events so the
// inventory context can adjust stock per line
type InvoiceLineInfo struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// InvoiceIssuedEvent is raised when an invoice is created. One stock
// decrement per line is expected downstream.
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID         `json:"invoice_id"`
	InvoiceNumber string            `json:"invoice_number"`
	OrderID       *uuid.UUID        `json:"order_id,omitempty"`
	CustomerID    uuid.UUID         `json:"customer_id"`
	Items         []InvoiceLineInfo `json:"items"`
	Total         decimal.Decimal   `json:"total"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(invoice *Invoice) *InvoiceIssuedEvent {
	items := make([]InvoiceLineInfo, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, InvoiceLineInfo{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, AggregateTypeInvoice, invoice.ID, invoice.AgencyID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		OrderID:         invoice.OrderID,
		CustomerID:      invoice.CustomerID,
		Items:           items,
		Total:           invoice.Total,
	}
}

// EventType returns the event type name
func (e *InvoiceIssuedEvent) EventType() string {
	return EventTypeInvoiceIssued
}

// SalesReturnProcessedEvent is raised when a return is processed. One stock
// increment per line is expected downstream, tagged distinctly from sale
// movements.
type SalesReturnProcessedEvent struct {
	shared.BaseDomainEvent
	ReturnID     uuid.UUID         `json:"return_id"`
	ReturnNumber string            `json:"return_number"`
	InvoiceID    *uuid.UUID        `json:"invoice_id,omitempty"`
	CustomerID   uuid.UUID         `json:"customer_id"`
	Items        []InvoiceLineInfo `json:"items"`
	Total        decimal.Decimal   `json:"total"`
}

// NewSalesReturnProcessedEvent creates a new SalesReturnProcessedEvent
func NewSalesReturnProcessedEvent(ret *SalesReturn) *SalesReturnProcessedEvent {
	items := make([]InvoiceLineInfo, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, InvoiceLineInfo{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}
	return &SalesReturnProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesReturnProcessed, AggregateTypeSalesReturn, ret.ID, ret.AgencyID),
		ReturnID:        ret.ID,
		ReturnNumber:    ret.ReturnNumber,
		InvoiceID:       ret.InvoiceID,
		CustomerID:      ret.CustomerID,
		Items:           items,
		Total:           ret.Total,
	}
}

// EventType returns the event type name
func (e *SalesReturnProcessedEvent) EventType() string {
	return EventTypeSalesReturnProcessed
}

// DeliveryCompletedEvent is raised when a delivery reaches DELIVERED
type DeliveryCompletedEvent struct {
	shared.BaseDomainEvent
	DeliveryID   uuid.UUID `json:"delivery_id"`
	InvoiceID    uuid.UUID `json:"invoice_id"`
	AgentID      uuid.UUID `json:"agent_id"`
	ReceiverName string    `json:"receiver_name"`
}

// NewDeliveryCompletedEvent creates a new DeliveryCompletedEvent
func NewDeliveryCompletedEvent(delivery *Delivery) *DeliveryCompletedEvent {
	return &DeliveryCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryCompleted, AggregateTypeDelivery, delivery.ID, delivery.AgencyID),
		DeliveryID:      delivery.ID,
		InvoiceID:       delivery.InvoiceID,
		AgentID:         delivery.AgentID,
		ReceiverName:    delivery.ReceiverName,
	}
}

// EventType returns the event type name
func (e *DeliveryCompletedEvent) EventType() string {
	return EventTypeDeliveryCompleted
}
