package sales

import (
	"fmt"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the status of a sales return
type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "PENDING"
	ReturnStatusApproved  ReturnStatus = "APPROVED"
	ReturnStatusProcessed ReturnStatus = "PROCESSED"
	ReturnStatusRejected  ReturnStatus = "REJECTED"
)

// IsValid checks if the status is a valid ReturnStatus
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusProcessed, ReturnStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of ReturnStatus
func (s ReturnStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	switch s {
	case ReturnStatusPending:
		return target == ReturnStatusApproved || target == ReturnStatusRejected
	case ReturnStatusApproved:
		return target == ReturnStatusProcessed
	case ReturnStatusProcessed, ReturnStatusRejected:
		return false
	}
	return false
}

// SalesReturnItem represents a reversed line item. OriginalQuantity is the
// quantity on the linked invoice line; zero means the cap is not yet known
// because the invoice linkage is deferred.
type SalesReturnItem struct {
	ID               uuid.UUID
	ReturnID         uuid.UUID
	ProductID        uuid.UUID
	ProductName      string
	Quantity         decimal.Decimal
	OriginalQuantity decimal.Decimal
	UnitPrice        decimal.Decimal
	Amount           decimal.Decimal
	CreatedAt        time.Time
}

// NewSalesReturnItem creates a return line item. When originalQuantity is
// positive the returned quantity must not exceed it.
func NewSalesReturnItem(returnID, productID uuid.UUID, productName string, quantity, originalQuantity decimal.Decimal, unitPrice valueobject.Money) (*SalesReturnItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if originalQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Original quantity cannot be negative")
	}
	if originalQuantity.IsPositive() && quantity.GreaterThan(originalQuantity) {
		return nil, shared.NewDomainError("RETURN_EXCEEDS_INVOICED",
			fmt.Sprintf("Return quantity %s exceeds invoiced quantity %s", quantity, originalQuantity))
	}

	return &SalesReturnItem{
		ID:               uuid.New(),
		ReturnID:         returnID,
		ProductID:        productID,
		ProductName:      productName,
		Quantity:         quantity,
		OriginalQuantity: originalQuantity,
		UnitPrice:        unitPrice.Amount(),
		Amount:           quantity.Mul(unitPrice.Amount()),
		CreatedAt:        time.Now(),
	}, nil
}

// SalesReturn reverses quantities and amounts from a prior invoice. The
// invoice reference may be attached after creation (deferred allocation);
// until linked, item caps are provisional.
type SalesReturn struct {
	shared.AgencyAggregateRoot
	ReturnNumber string
	InvoiceID    *uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	Items        []SalesReturnItem
	Total        decimal.Decimal
	Reason       string
	Status       ReturnStatus
	Location     valueobject.GeoPoint
	ProcessedAt  *time.Time
	RejectedAt   *time.Time
}

// NewSalesReturn creates a return in PENDING status with no items
func NewSalesReturn(agencyID uuid.UUID, returnNumber string, invoiceID *uuid.UUID, customerID uuid.UUID, customerName, reason string, location valueobject.GeoPoint) (*SalesReturn, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Return reason cannot be empty")
	}

	return &SalesReturn{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		ReturnNumber:        returnNumber,
		InvoiceID:           invoiceID,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Items:               make([]SalesReturnItem, 0),
		Total:               decimal.Zero,
		Reason:              reason,
		Status:              ReturnStatusPending,
		Location:            location,
	}, nil
}

// AddItem adds a reversed line to a pending return. The per-item cap is
// enforced immediately when originalQuantity is known, otherwise at linkage.
func (r *SalesReturn) AddItem(productID uuid.UUID, productName string, quantity, originalQuantity decimal.Decimal, unitPrice valueobject.Money) (*SalesReturnItem, error) {
	if r.Status != ReturnStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending return")
	}

	item, err := NewSalesReturnItem(r.ID, productID, productName, quantity, originalQuantity, unitPrice)
	if err != nil {
		return nil, err
	}

	r.Items = append(r.Items, *item)
	r.recalculateTotal()
	r.UpdatedAt = time.Now()

	return item, nil
}

// LinkInvoice attaches a deferred invoice reference and re-validates every
// item against the invoiced quantities
func (r *SalesReturn) LinkInvoice(invoice *Invoice) error {
	if invoice == nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice cannot be nil")
	}
	if r.InvoiceID != nil {
		return shared.NewDomainError("ALREADY_LINKED", "Return is already linked to an invoice")
	}
	if r.Status == ReturnStatusProcessed || r.Status == ReturnStatusRejected {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot link invoice to return in %s status", r.Status))
	}
	if invoice.CustomerID != r.CustomerID {
		return shared.NewDomainError("CUSTOMER_MISMATCH", "Invoice belongs to a different customer")
	}

	for idx := range r.Items {
		original := invoice.InvoicedQuantityFor(r.Items[idx].ProductID)
		if r.Items[idx].Quantity.GreaterThan(original) {
			return shared.NewDomainError("RETURN_EXCEEDS_INVOICED",
				fmt.Sprintf("Return quantity %s for %s exceeds invoiced quantity %s",
					r.Items[idx].Quantity, r.Items[idx].ProductName, original))
		}
		r.Items[idx].OriginalQuantity = original
	}

	id := invoice.ID
	r.InvoiceID = &id
	r.UpdatedAt = time.Now()

	return nil
}

// Approve moves a pending return to APPROVED. Field returns are
// auto-approved on submission; the explicit transition keeps a manual gate
// possible.
func (r *SalesReturn) Approve() error {
	if !r.Status.CanTransitionTo(ReturnStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve return in %s status", r.Status))
	}
	if len(r.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot approve return without items")
	}

	r.Status = ReturnStatusApproved
	r.UpdatedAt = time.Now()

	return nil
}

// MarkProcessed records that the stock reversal has been emitted
func (r *SalesReturn) MarkProcessed() error {
	if !r.Status.CanTransitionTo(ReturnStatusProcessed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot process return in %s status", r.Status))
	}

	now := time.Now()
	r.Status = ReturnStatusProcessed
	r.ProcessedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewSalesReturnProcessedEvent(r))

	return nil
}

// Reject declines a pending return
func (r *SalesReturn) Reject() error {
	if !r.Status.CanTransitionTo(ReturnStatusRejected) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reject return in %s status", r.Status))
	}

	now := time.Now()
	r.Status = ReturnStatusRejected
	r.RejectedAt = &now
	r.UpdatedAt = now

	return nil
}

func (r *SalesReturn) recalculateTotal() {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.Amount)
	}
	r.Total = total
}
