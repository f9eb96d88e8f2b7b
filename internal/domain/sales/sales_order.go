package sales

import (
	"fmt"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "PENDING"
	OrderStatusApproved          OrderStatus = "APPROVED"
	OrderStatusPartiallyInvoiced OrderStatus = "PARTIALLY_INVOICED"
	OrderStatusInvoiced          OrderStatus = "INVOICED"
	OrderStatusClosed            OrderStatus = "CLOSED"
	OrderStatusCancelled         OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusPartiallyInvoiced,
		OrderStatusInvoiced, OrderStatusClosed, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status allows no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusInvoiced || s == OrderStatusClosed || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are monotonic: no order re-opens from a terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusApproved || target == OrderStatusCancelled || target == OrderStatusClosed
	case OrderStatusApproved:
		return target == OrderStatusPartiallyInvoiced || target == OrderStatusInvoiced || target == OrderStatusClosed
	case OrderStatusPartiallyInvoiced:
		return target == OrderStatusInvoiced || target == OrderStatusClosed
	case OrderStatusInvoiced, OrderStatusClosed, OrderStatusCancelled:
		return false
	}
	return false
}

// SalesOrderItem represents a line item in a sales order
type SalesOrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Color       string
	Size        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity * UnitPrice
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSalesOrderItem creates a new sales order item
func NewSalesOrderItem(orderID, productID uuid.UUID, productName, color, size string, quantity decimal.Decimal, unitPrice valueobject.Money) (*SalesOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &SalesOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Color:       color,
		Size:        size,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetAmountMoney returns the line amount as a Money value object
func (i *SalesOrderItem) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Amount)
}

// SalesOrder is the aggregate root for a field-sales order. It owns the
// discount verdict outcome (pending vs. approved at creation) and tracks
// cumulative invoiced value through partial fulfillment.
type SalesOrder struct {
	shared.AgencyAggregateRoot
	OrderNumber      string
	CustomerID       uuid.UUID
	CustomerName     string
	Items            []SalesOrderItem
	Subtotal         decimal.Decimal // Sum of all item amounts
	DiscountPercent  decimal.Decimal // Effective discount percentage
	DiscountAmount   decimal.Decimal // Subtotal * DiscountPercent / 100
	Total            decimal.Decimal // Subtotal - DiscountAmount
	TotalInvoiced    decimal.Decimal // Cumulative invoiced value, never exceeds Total
	Status           OrderStatus
	RequiresApproval bool
	ApprovedBy       *uuid.UUID
	ApprovedAt       *time.Time
	RejectedBy       *uuid.UUID
	RejectedAt       *time.Time
	RejectReason     string
	ClosedAt         *time.Time
	CancelledAt      *time.Time
	Remark           string
}

// NewSalesOrder creates a new sales order in PENDING status with no items.
// Items and discount are applied while PENDING; Submit fixes the initial
// status from the discount verdict.
func NewSalesOrder(agencyID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName string) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &SalesOrder{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Items:               make([]SalesOrderItem, 0),
		Subtotal:            decimal.Zero,
		DiscountPercent:     decimal.Zero,
		DiscountAmount:      decimal.Zero,
		Total:               decimal.Zero,
		TotalInvoiced:       decimal.Zero,
		Status:              OrderStatusPending,
	}, nil
}

// AddItem adds a new item to the order. Only allowed while PENDING before
// the approval decision.
func (o *SalesOrder) AddItem(productID uuid.UUID, productName, color, size string, quantity decimal.Decimal, unitPrice valueobject.Money) (*SalesOrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	item, err := NewSalesOrderItem(o.ID, productID, productName, color, size, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return item, nil
}

// ApplyPercentDiscount applies an order-level percentage discount
func (o *SalesOrder) ApplyPercentDiscount(percent decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply discount to a non-pending order")
	}
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage must be between 0 and 100")
	}

	o.DiscountPercent = percent
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// ApplyFixedDiscount applies a fixed-amount discount, normalized to an
// effective percentage of the subtotal. A zero subtotal yields zero percent.
func (o *SalesOrder) ApplyFixedDiscount(amount valueobject.Money) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot apply discount to a non-pending order")
	}
	if amount.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if amount.Amount().GreaterThan(o.Subtotal) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed subtotal")
	}

	if o.Subtotal.IsZero() {
		o.DiscountPercent = decimal.Zero
	} else {
		o.DiscountPercent = amount.Amount().Div(o.Subtotal).Mul(decimal.NewFromInt(100))
	}
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// Submit finalizes order creation with the discount verdict. Orders within
// the agency limit go straight to APPROVED; orders over the limit stay
// PENDING until a superuser decides.
func (o *SalesOrder) Submit(requiresApproval bool) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot submit order without items")
	}

	o.RequiresApproval = requiresApproval
	now := time.Now()
	if !requiresApproval {
		o.Status = OrderStatusApproved
	}
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderCreatedEvent(o))

	return nil
}

// Approve transitions a pending order to APPROVED via an explicit superuser
// action, stamping the approver and timestamp
func (o *SalesOrder) Approve(actor uuid.UUID) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve order in %s status", o.Status))
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Approver cannot be empty")
	}

	now := time.Now()
	o.Status = OrderStatusApproved
	o.ApprovedBy = &actor
	o.ApprovedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderApprovedEvent(o, actor))

	return nil
}

// Reject cancels a pending order, stamping the rejecting actor
func (o *SalesOrder) Reject(actor uuid.UUID, reason string) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject order in %s status", o.Status))
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Rejecting actor cannot be empty")
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.RejectedBy = &actor
	o.RejectedAt = &now
	o.RejectReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderRejectedEvent(o, actor, reason))

	return nil
}

// RecordInvoiced adds an invoiced amount to the cumulative total and
// recomputes status: INVOICED iff TotalInvoiced equals Total, otherwise
// PARTIALLY_INVOICED. Valid only from APPROVED or PARTIALLY_INVOICED while
// the order is not fully invoiced.
func (o *SalesOrder) RecordInvoiced(amount valueobject.Money) error {
	if o.Status != OrderStatusApproved && o.Status != OrderStatusPartiallyInvoiced {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot invoice order in %s status", o.Status))
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Invoiced amount must be positive")
	}

	newTotal := o.TotalInvoiced.Add(amount.Amount())
	if newTotal.GreaterThan(o.Total) {
		return shared.NewDomainError("INVOICE_EXCEEDS_TOTAL",
			fmt.Sprintf("Invoiced amount %s would exceed order total %s", newTotal, o.Total))
	}

	o.TotalInvoiced = newTotal
	if o.TotalInvoiced.Equal(o.Total) {
		o.Status = OrderStatusInvoiced
	} else {
		o.Status = OrderStatusPartiallyInvoiced
	}
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewSalesOrderInvoicedEvent(o, amount.Amount()))

	return nil
}

// Close terminates the order manually. Valid from any state except CLOSED,
// CANCELLED and INVOICED.
func (o *SalesOrder) Close() error {
	if !o.Status.CanTransitionTo(OrderStatusClosed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusClosed
	o.ClosedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderClosedEvent(o))

	return nil
}

// Cancel cancels a pending order without an approval decision
func (o *SalesOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.RejectReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewSalesOrderCancelledEvent(o, reason))

	return nil
}

// SetRemark sets the order remark
func (o *SalesOrder) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
}

// RemainingAmount returns the order value left to invoice
func (o *SalesOrder) RemainingAmount() decimal.Decimal {
	return o.Total.Sub(o.TotalInvoiced)
}

// IsInvoiceable reports whether the order can still accept invoices
func (o *SalesOrder) IsInvoiceable() bool {
	return (o.Status == OrderStatusApproved || o.Status == OrderStatusPartiallyInvoiced) &&
		o.TotalInvoiced.LessThan(o.Total)
}

// GetTotalMoney returns the total as a Money value object
func (o *SalesOrder) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Total)
}

func (o *SalesOrder) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	o.Subtotal = subtotal
	o.DiscountAmount = subtotal.Mul(o.DiscountPercent).Div(decimal.NewFromInt(100))
	o.Total = subtotal.Sub(o.DiscountAmount)
}
