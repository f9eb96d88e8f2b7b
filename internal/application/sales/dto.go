package sales

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Sales Order DTOs ====================

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	CustomerID      uuid.UUID                   `json:"customer_id" binding:"required"`
	CustomerName    string                      `json:"customer_name" binding:"required,min=1,max=200"`
	Items           []CreateSalesOrderItemInput `json:"items" binding:"required,min=1"`
	DiscountPercent *decimal.Decimal            `json:"discount_percent"`
	DiscountAmount  *decimal.Decimal            `json:"discount_amount"`
	Remark          string                      `json:"remark"`
}

// CreateSalesOrderItemInput represents an item in the create order request
type CreateSalesOrderItemInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,min=1,max=200"`
	Color       string          `json:"color" binding:"max=50"`
	Size        string          `json:"size" binding:"max=20"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// RejectSalesOrderRequest represents a superuser rejection
type RejectSalesOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// CancelSalesOrderRequest represents a cancellation of a pending order
type CancelSalesOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// SalesOrderListFilter represents filter options for the order list
type SalesOrderListFilter struct {
	Search     string             `form:"search"`
	CustomerID *uuid.UUID         `form:"customer_id"`
	Status     *sales.OrderStatus `form:"status"`
	Page       int                `form:"page"`
	PageSize   int                `form:"page_size"`
	OrderBy    string             `form:"order_by"`
	OrderDir   string             `form:"order_dir"`
}

// SalesOrderItemResponse represents an order line in responses
type SalesOrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// SalesOrderResponse represents a sales order in responses
type SalesOrderResponse struct {
	ID               uuid.UUID                `json:"id"`
	AgencyID         uuid.UUID                `json:"agency_id"`
	OrderNumber      string                   `json:"order_number"`
	CustomerID       uuid.UUID                `json:"customer_id"`
	CustomerName     string                   `json:"customer_name"`
	Items            []SalesOrderItemResponse `json:"items"`
	Subtotal         decimal.Decimal          `json:"subtotal"`
	DiscountPercent  decimal.Decimal          `json:"discount_percent"`
	DiscountAmount   decimal.Decimal          `json:"discount_amount"`
	Total            decimal.Decimal          `json:"total"`
	TotalInvoiced    decimal.Decimal          `json:"total_invoiced"`
	Remaining        decimal.Decimal          `json:"remaining"`
	Status           string                   `json:"status"`
	RequiresApproval bool                     `json:"requires_approval"`
	ApprovalMessage  string                   `json:"approval_message,omitempty"`
	ApprovedBy       *uuid.UUID               `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time               `json:"approved_at,omitempty"`
	RejectedBy       *uuid.UUID               `json:"rejected_by,omitempty"`
	RejectedAt       *time.Time               `json:"rejected_at,omitempty"`
	RejectReason     string                   `json:"reject_reason,omitempty"`
	Remark           string                   `json:"remark,omitempty"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
	Version          int                      `json:"version"`
}

// ToSalesOrderResponse converts a domain SalesOrder to a response DTO
func ToSalesOrderResponse(order *sales.SalesOrder) SalesOrderResponse {
	items := make([]SalesOrderItemResponse, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items[i] = SalesOrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Color:       item.Color,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	return SalesOrderResponse{
		ID:               order.ID,
		AgencyID:         order.AgencyID,
		OrderNumber:      order.OrderNumber,
		CustomerID:       order.CustomerID,
		CustomerName:     order.CustomerName,
		Items:            items,
		Subtotal:         order.Subtotal,
		DiscountPercent:  order.DiscountPercent,
		DiscountAmount:   order.DiscountAmount,
		Total:            order.Total,
		TotalInvoiced:    order.TotalInvoiced,
		Remaining:        order.RemainingAmount(),
		Status:           order.Status.String(),
		RequiresApproval: order.RequiresApproval,
		ApprovedBy:       order.ApprovedBy,
		ApprovedAt:       order.ApprovedAt,
		RejectedBy:       order.RejectedBy,
		RejectedAt:       order.RejectedAt,
		RejectReason:     order.RejectReason,
		Remark:           order.Remark,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
		Version:          order.Version,
	}
}

// ==================== Invoice DTOs ====================

// CreateInvoiceItemInput represents a line in an invoice creation request
type CreateInvoiceItemInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,min=1,max=200"`
	Color       string          `json:"color" binding:"max=50"`
	Size        string          `json:"size" binding:"max=20"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// GeoPointInput carries optional captured coordinates. Absent coordinates
// are stored as explicitly unavailable, never substituted.
type GeoPointInput struct {
	Latitude  decimal.Decimal `json:"latitude"`
	Longitude decimal.Decimal `json:"longitude"`
}

// CreateDirectInvoiceRequest creates an invoice without a sales order
type CreateDirectInvoiceRequest struct {
	CustomerID      uuid.UUID                `json:"customer_id" binding:"required"`
	CustomerName    string                   `json:"customer_name" binding:"required,min=1,max=200"`
	Items           []CreateInvoiceItemInput `json:"items" binding:"required,min=1"`
	DiscountPercent decimal.Decimal          `json:"discount_percent"`
	Signature       string                   `json:"signature" binding:"required"`
	Location        *GeoPointInput           `json:"location"`
	Remark          string                   `json:"remark"`
}

// ConvertOrderToInvoiceRequest invoices part or all of an approved order
type ConvertOrderToInvoiceRequest struct {
	Items     []CreateInvoiceItemInput `json:"items" binding:"required,min=1"`
	Signature string                   `json:"signature" binding:"required"`
	Location  *GeoPointInput           `json:"location"`
	Remark    string                   `json:"remark"`
}

// InvoiceItemResponse represents an invoice line in responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in responses. StockWarnings lists
// inventory adjustments that failed after the invoice was created; the
// invoice itself stands regardless.
type InvoiceResponse struct {
	ID                uuid.UUID             `json:"id"`
	AgencyID          uuid.UUID             `json:"agency_id"`
	InvoiceNumber     string                `json:"invoice_number"`
	OrderID           *uuid.UUID            `json:"order_id,omitempty"`
	CustomerID        uuid.UUID             `json:"customer_id"`
	CustomerName      string                `json:"customer_name"`
	Items             []InvoiceItemResponse `json:"items"`
	Subtotal          decimal.Decimal       `json:"subtotal"`
	DiscountPercent   decimal.Decimal       `json:"discount_percent"`
	DiscountAmount    decimal.Decimal       `json:"discount_amount"`
	Total             decimal.Decimal       `json:"total"`
	LocationAvailable bool                  `json:"location_available"`
	Latitude          *decimal.Decimal      `json:"latitude,omitempty"`
	Longitude         *decimal.Decimal      `json:"longitude,omitempty"`
	Remark            string                `json:"remark,omitempty"`
	StockWarnings     []string              `json:"stock_warnings,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

// ToInvoiceResponse converts a domain Invoice to a response DTO
func ToInvoiceResponse(invoice *sales.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(invoice.Items))
	for i := range invoice.Items {
		item := &invoice.Items[i]
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Color:       item.Color,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	resp := InvoiceResponse{
		ID:                invoice.ID,
		AgencyID:          invoice.AgencyID,
		InvoiceNumber:     invoice.InvoiceNumber,
		OrderID:           invoice.OrderID,
		CustomerID:        invoice.CustomerID,
		CustomerName:      invoice.CustomerName,
		Items:             items,
		Subtotal:          invoice.Subtotal,
		DiscountPercent:   invoice.DiscountPercent,
		DiscountAmount:    invoice.DiscountAmount,
		Total:             invoice.Total,
		LocationAvailable: invoice.Location.IsAvailable(),
		Remark:            invoice.Remark,
		CreatedAt:         invoice.CreatedAt,
	}
	if invoice.Location.IsAvailable() {
		lat := invoice.Location.Latitude()
		lng := invoice.Location.Longitude()
		resp.Latitude = &lat
		resp.Longitude = &lng
	}
	return resp
}

// ==================== Return DTOs ====================

// CreateReturnItemInput represents a reversed line in a return request
type CreateReturnItemInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	ProductName string          `json:"product_name" binding:"required,min=1,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateSalesReturnRequest creates a return, optionally linked to an invoice
type CreateSalesReturnRequest struct {
	InvoiceID    *uuid.UUID              `json:"invoice_id"`
	CustomerID   uuid.UUID               `json:"customer_id" binding:"required"`
	CustomerName string                  `json:"customer_name" binding:"required,min=1,max=200"`
	Items        []CreateReturnItemInput `json:"items" binding:"required,min=1"`
	Reason       string                  `json:"reason" binding:"required,min=1,max=500"`
	Location     *GeoPointInput          `json:"location"`
}

// LinkReturnInvoiceRequest attaches a deferred invoice reference
type LinkReturnInvoiceRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
}

// SalesReturnItemResponse represents a return line in responses
type SalesReturnItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	OriginalQuantity decimal.Decimal `json:"original_quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Amount           decimal.Decimal `json:"amount"`
}

// SalesReturnResponse represents a return in responses
type SalesReturnResponse struct {
	ID            uuid.UUID                 `json:"id"`
	AgencyID      uuid.UUID                 `json:"agency_id"`
	ReturnNumber  string                    `json:"return_number"`
	InvoiceID     *uuid.UUID                `json:"invoice_id,omitempty"`
	CustomerID    uuid.UUID                 `json:"customer_id"`
	CustomerName  string                    `json:"customer_name"`
	Items         []SalesReturnItemResponse `json:"items"`
	Total         decimal.Decimal           `json:"total"`
	Reason        string                    `json:"reason"`
	Status        string                    `json:"status"`
	StockWarnings []string                  `json:"stock_warnings,omitempty"`
	ProcessedAt   *time.Time                `json:"processed_at,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// ToSalesReturnResponse converts a domain SalesReturn to a response DTO
func ToSalesReturnResponse(ret *sales.SalesReturn) SalesReturnResponse {
	items := make([]SalesReturnItemResponse, len(ret.Items))
	for i := range ret.Items {
		item := &ret.Items[i]
		items[i] = SalesReturnItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			OriginalQuantity: item.OriginalQuantity,
			UnitPrice:        item.UnitPrice,
			Amount:           item.Amount,
		}
	}

	return SalesReturnResponse{
		ID:           ret.ID,
		AgencyID:     ret.AgencyID,
		ReturnNumber: ret.ReturnNumber,
		InvoiceID:    ret.InvoiceID,
		CustomerID:   ret.CustomerID,
		CustomerName: ret.CustomerName,
		Items:        items,
		Total:        ret.Total,
		Reason:       ret.Reason,
		Status:       ret.Status.String(),
		ProcessedAt:  ret.ProcessedAt,
		CreatedAt:    ret.CreatedAt,
	}
}

// ==================== Delivery DTOs ====================

// CreateDeliveryRequest assigns an invoice delivery to an agent
type CreateDeliveryRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id" binding:"required"`
	AgentID   uuid.UUID `json:"agent_id" binding:"required"`
}

// CompleteDeliveryRequest confirms a hand-off with proof
type CompleteDeliveryRequest struct {
	Signature     string         `json:"signature" binding:"required"`
	ReceiverName  string         `json:"receiver_name" binding:"required,min=1,max=200"`
	ReceiverPhone string         `json:"receiver_phone" binding:"max=50"`
	Location      *GeoPointInput `json:"location"`
}

// FailDeliveryRequest records a failed attempt
type FailDeliveryRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// DeliveryResponse represents a delivery in responses
type DeliveryResponse struct {
	ID                uuid.UUID  `json:"id"`
	AgencyID          uuid.UUID  `json:"agency_id"`
	InvoiceID         uuid.UUID  `json:"invoice_id"`
	AgentID           uuid.UUID  `json:"agent_id"`
	Status            string     `json:"status"`
	ReceiverName      string     `json:"receiver_name,omitempty"`
	ReceiverPhone     string     `json:"receiver_phone,omitempty"`
	LocationAvailable bool       `json:"location_available"`
	DispatchedAt      *time.Time `json:"dispatched_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	FailedAt          *time.Time `json:"failed_at,omitempty"`
	FailureReason     string     `json:"failure_reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	Version           int        `json:"version"`
}

// ToDeliveryResponse converts a domain Delivery to a response DTO
func ToDeliveryResponse(delivery *sales.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:                delivery.ID,
		AgencyID:          delivery.AgencyID,
		InvoiceID:         delivery.InvoiceID,
		AgentID:           delivery.AgentID,
		Status:            delivery.Status.String(),
		ReceiverName:      delivery.ReceiverName,
		ReceiverPhone:     delivery.ReceiverPhone,
		LocationAvailable: delivery.Location.IsAvailable(),
		DispatchedAt:      delivery.DispatchedAt,
		DeliveredAt:       delivery.DeliveredAt,
		FailedAt:          delivery.FailedAt,
		FailureReason:     delivery.FailureReason,
		CreatedAt:         delivery.CreatedAt,
		Version:           delivery.Version,
	}
}
