package sales

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceItem represents a line item snapshot on an invoice. Quantities may
// diverge from the parent order's items under partial fulfillment.
type InvoiceItem struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Color       string
	Size        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// NewInvoiceItem creates a new invoice line item
func NewInvoiceItem(invoiceID, productID uuid.UUID, productName, color, size string, quantity decimal.Decimal, unitPrice valueobject.Money) (*InvoiceItem, error) {
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

	return &InvoiceItem{
		ID:          uuid.New(),
		InvoiceID:   invoiceID,
		ProductID:   productID,
		ProductName: productName,
		Color:       color,
		Size:        size,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Amount:      quantity.Mul(unitPrice.Amount()),
		CreatedAt:   time.Now(),
	}, nil
}

// InvoiceItemSpec carries caller-supplied line data into NewInvoice
type InvoiceItemSpec struct {
	ProductID   uuid.UUID
	ProductName string
	Color       string
	Size        string
	Quantity    decimal.Decimal
	UnitPrice   valueobject.Money
}

// Invoice is an immutable record of goods handed over to a customer.
// It either fulfills part of a sales order (OrderID set) or stands alone as
// a direct invoice. Signature presence is mandatory; location is captured
// when available and stored as explicitly unavailable otherwise.
type Invoice struct {
	shared.AgencyAggregateRoot
	InvoiceNumber   string
	OrderID         *uuid.UUID // nil = direct invoice
	CustomerID      uuid.UUID
	CustomerName    string
	Items           []InvoiceItem
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Total           decimal.Decimal
	Signature       valueobject.Signature
	Location        valueobject.GeoPoint
	Remark          string
}

// NewInvoice creates an invoice from the given line specs. Requires at least
// one item and a non-empty signature; both are checked before anything is
// persisted.
func NewInvoice(agencyID uuid.UUID, invoiceNumber string, orderID *uuid.UUID, customerID uuid.UUID, customerName string, items []InvoiceItemSpec, discountPercent decimal.Decimal, signature valueobject.Signature, location valueobject.GeoPoint) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Invoice must have at least one item")
	}
	if signature.IsEmpty() {
		return nil, shared.NewDomainError("SIGNATURE_REQUIRED", "Invoice requires a customer signature")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage must be between 0 and 100")
	}

	inv := &Invoice{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		InvoiceNumber:       invoiceNumber,
		OrderID:             orderID,
		CustomerID:          customerID,
		CustomerName:        customerName,
		Items:               make([]InvoiceItem, 0, len(items)),
		DiscountPercent:     discountPercent,
		Signature:           signature,
		Location:            location,
	}

	subtotal := decimal.Zero
	for _, spec := range items {
		item, err := NewInvoiceItem(inv.ID, spec.ProductID, spec.ProductName, spec.Color, spec.Size, spec.Quantity, spec.UnitPrice)
		if err != nil {
			return nil, err
		}
		inv.Items = append(inv.Items, *item)
		subtotal = subtotal.Add(item.Amount)
	}

	inv.Subtotal = subtotal
	inv.DiscountAmount = subtotal.Mul(discountPercent).Div(decimal.NewFromInt(100))
	inv.Total = subtotal.Sub(inv.DiscountAmount)

	inv.AddDomainEvent(NewInvoiceIssuedEvent(inv))

	return inv, nil
}

// IsDirect reports whether the invoice was created without a sales order
func (i *Invoice) IsDirect() bool {
	return i.OrderID == nil
}

// InvoicedQuantityFor returns the invoiced quantity for a product, summed
// across line items. Zero when the product does not appear on the invoice.
func (i *Invoice) InvoicedQuantityFor(productID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.Items {
		if item.ProductID == productID {
			total = total.Add(item.Quantity)
		}
	}
	return total
}

// GetTotalMoney returns the invoice total as a Money value object
func (i *Invoice) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(i.Total)
}

// SetRemark sets the invoice remark
func (i *Invoice) SetRemark(remark string) {
	i.Remark = remark
	i.UpdatedAt = time.Now()
}
