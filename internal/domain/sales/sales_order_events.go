package sales

import (
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSalesOrder = "SalesOrder"

// Event type constants
const (
	EventTypeSalesOrderCreated   = "SalesOrderCreated"
	EventTypeSalesOrderApproved  = "SalesOrderApproved"
	EventTypeSalesOrderRejected  = "SalesOrderRejected"
	EventTypeSalesOrderInvoiced  = "SalesOrderInvoiced"
	EventTypeSalesOrderClosed    = "SalesOrderClosed"
	EventTypeSalesOrderCancelled = "SalesOrderCancelled"
)

// SalesOrderCreatedEvent is raised when a new sales order is submitted
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID          uuid.UUID       `json:"order_id"`
	OrderNumber      string          `json:"order_number"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	Total            decimal.Decimal `json:"total"`
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	RequiresApproval bool            `json:"requires_approval"`
	Status           string          `json:"status"`
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(order *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, AggregateTypeSalesOrder, order.ID, order.AgencyID),
		OrderID:          order.ID,
		OrderNumber:      order.OrderNumber,
		CustomerID:       order.CustomerID,
		CustomerName:     order.CustomerName,
		Total:            order.Total,
		DiscountPercent:  order.DiscountPercent,
		RequiresApproval: order.RequiresApproval,
		Status:           order.Status.String(),
	}
}

// EventType returns the event type name
func (e *SalesOrderCreatedEvent) EventType() string {
	return EventTypeSalesOrderCreated
}

// SalesOrderApprovedEvent is raised when a superuser approves a pending order
type SalesOrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	ApprovedBy  uuid.UUID `json:"approved_by"`
}

// NewSalesOrderApprovedEvent creates a new SalesOrderApprovedEvent
func NewSalesOrderApprovedEvent(order *SalesOrder, actor uuid.UUID) *SalesOrderApprovedEvent {
	return &SalesOrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderApproved, AggregateTypeSalesOrder, order.ID, order.AgencyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		ApprovedBy:      actor,
	}
}

// EventType returns the event type name
func (e *SalesOrderApprovedEvent) EventType() string {
	return EventTypeSalesOrderApproved
}

// SalesOrderRejectedEvent is raised when a superuser rejects a pending order
type SalesOrderRejectedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	RejectedBy  uuid.UUID `json:"rejected_by"`
	Reason      string    `json:"reason"`
}

// NewSalesOrderRejectedEvent creates a new SalesOrderRejectedEvent
func NewSalesOrderRejectedEvent(order *SalesOrder, actor uuid.UUID, reason string) *SalesOrderRejectedEvent {
	return &SalesOrderRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderRejected, AggregateTypeSalesOrder, order.ID, order.AgencyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		RejectedBy:      actor,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *SalesOrderRejectedEvent) EventType() string {
	return EventTypeSalesOrderRejected
}

// SalesOrderInvoicedEvent is raised each time an invoice is recorded
// against the order, including the final one
type SalesOrderInvoicedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	InvoicedAmount decimal.Decimal `json:"invoiced_amount"`
	TotalInvoiced  decimal.Decimal `json:"total_invoiced"`
	Remaining      decimal.Decimal `json:"remaining"`
	Status         string          `json:"status"`
}

// NewSalesOrderInvoicedEvent creates a new SalesOrderInvoicedEvent
func NewSalesOrderInvoicedEvent(order *SalesOrder, amount decimal.Decimal) *SalesOrderInvoicedEvent {
	return &SalesOrderInvoicedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderInvoiced, AggregateTypeSalesOrder, order.ID, order.AgencyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		InvoicedAmount:  amount,
		TotalInvoiced:   order.TotalInvoiced,
		Remaining:       order.RemainingAmount(),
		Status:          order.Status.String(),
	}
}

// EventType returns the event type name
func (e *SalesOrderInvoicedEvent) EventType() string {
	return EventTypeSalesOrderInvoiced
}

// SalesOrderClosedEvent is raised when an order is manually closed
type SalesOrderClosedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// NewSalesOrderClosedEvent creates a new SalesOrderClosedEvent
func NewSalesOrderClosedEvent(order *SalesOrder) *SalesOrderClosedEvent {
	return &SalesOrderClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderClosed, AggregateTypeSalesOrder, order.ID, order.AgencyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
	}
}

// EventType returns the event type name
func (e *SalesOrderClosedEvent) EventType() string {
	return EventTypeSalesOrderClosed
}

// SalesOrderCancelledEvent is raised when a pending order is cancelled
type SalesOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
}

// NewSalesOrderCancelledEvent creates a new SalesOrderCancelledEvent
func NewSalesOrderCancelledEvent(order *SalesOrder, reason string) *SalesOrderCancelledEvent {
	return &SalesOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCancelled, AggregateTypeSalesOrder, order.ID, order.AgencyID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *SalesOrderCancelledEvent) EventType() string {
	return EventTypeSalesOrderCancelled
}
