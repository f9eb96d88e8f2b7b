package sales

import (
	"context"
	"fmt"

	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockAdjuster applies stock movements caused by invoices and returns.
// It is the boundary to the inventory context.
type StockAdjuster interface {
	Decrement(ctx context.Context, agencyID, productID uuid.UUID, quantity decimal.Decimal, sourceType inventory.SourceType, sourceID uuid.UUID) error
	Increment(ctx context.Context, agencyID, productID uuid.UUID, quantity decimal.Decimal, sourceType inventory.SourceType, sourceID uuid.UUID) error
}

// InvoiceService handles invoice issuance, both direct and against an
// approved sales order. Stock decrements run after the invoice is
// persisted; a failed decrement is reported as a warning and never rolls
// the invoice back.
type InvoiceService struct {
	invoiceRepo    sales.InvoiceRepository
	orderRepo      sales.SalesOrderRepository
	stock          StockAdjuster
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo sales.InvoiceRepository, orderRepo sales.SalesOrderRepository, stock StockAdjuster, logger *zap.Logger) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		stock:       stock,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateDirect issues an invoice without a preceding sales order
func (s *InvoiceService) CreateDirect(ctx context.Context, agencyID, actorID uuid.UUID, req CreateDirectInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.buildInvoice(ctx, agencyID, actorID, nil, req.CustomerID, req.CustomerName, req.Items, req.DiscountPercent, req.Signature, req.Location, req.Remark)
	if err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	warnings := s.decrementStock(ctx, invoice)
	s.publishEvents(ctx, invoice)

	response := ToInvoiceResponse(invoice)
	response.StockWarnings = warnings
	return &response, nil
}

// ConvertOrder issues an invoice against an approved or partially invoiced
// sales order. The invoiced amount is recorded on the order under optimistic
// locking; the order flips to INVOICED exactly when the cumulative invoiced
// value reaches its total.
func (s *InvoiceService) ConvertOrder(ctx context.Context, agencyID, orderID, actorID uuid.UUID, req ConvertOrderToInvoiceRequest) (*InvoiceResponse, error) {
	order, err := s.orderRepo.FindByIDForAgency(ctx, agencyID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsInvoiceable() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Order %s in %s status cannot be invoiced", order.OrderNumber, order.Status))
	}

	invoice, err := s.buildInvoice(ctx, agencyID, actorID, &orderID, order.CustomerID, order.CustomerName, req.Items, order.DiscountPercent, req.Signature, req.Location, req.Remark)
	if err != nil {
		return nil, err
	}

	// Validate the amount against the order before persisting anything.
	if err := order.RecordInvoiced(invoice.GetTotalMoney()); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		// The invoice row exists but the order update lost; compensate by
		// removing the invoice so the pair stays consistent.
		if delErr := s.invoiceRepo.Delete(ctx, invoice.ID); delErr != nil {
			s.logger.Error("failed to compensate invoice after order update failure",
				zap.String("invoice_id", invoice.ID.String()),
				zap.Error(delErr))
		}
		return nil, err
	}

	warnings := s.decrementStock(ctx, invoice)
	s.publishEvents(ctx, invoice)
	s.publishOrderEvents(ctx, order)

	response := ToInvoiceResponse(invoice)
	response.StockWarnings = warnings
	return &response, nil
}

// GetByID retrieves an invoice by ID within the agency
func (s *InvoiceService) GetByID(ctx context.Context, agencyID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForAgency(ctx, agencyID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// ListByOrder retrieves all invoices issued against an order
func (s *InvoiceService) ListByOrder(ctx context.Context, agencyID, orderID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.FindByOrder(ctx, agencyID, orderID)
	if err != nil {
		return nil, err
	}
	responses := make([]InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		responses[i] = ToInvoiceResponse(invoice)
	}
	return responses, nil
}

// List retrieves invoices with pagination
func (s *InvoiceService) List(ctx context.Context, agencyID uuid.UUID, page, pageSize int) (*shared.Paginated[InvoiceResponse], error) {
	filter := buildDomainFilter(page, pageSize, "created_at", "desc", "")
	invoices, err := s.invoiceRepo.FindAllForAgency(ctx, agencyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *InvoiceService) buildInvoice(ctx context.Context, agencyID, actorID uuid.UUID, orderID *uuid.UUID, customerID uuid.UUID, customerName string, items []CreateInvoiceItemInput, discountPercent decimal.Decimal, signature string, location *GeoPointInput, remark string) (*sales.Invoice, error) {
	invoiceNumber, err := s.invoiceRepo.NextInvoiceNumber(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	specs := make([]sales.InvoiceItemSpec, 0, len(items))
	for _, item := range items {
		specs = append(specs, sales.InvoiceItemSpec{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Color:       item.Color,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   valueobject.NewMoneyUSD(item.UnitPrice),
		})
	}

	geo, err := resolveGeoPoint(location)
	if err != nil {
		return nil, err
	}

	invoice, err := sales.NewInvoice(agencyID, invoiceNumber, orderID, customerID, customerName, specs, discountPercent, valueobject.NewSignature(signature), geo)
	if err != nil {
		return nil, err
	}
	invoice.SetCreatedBy(actorID)
	if remark != "" {
		invoice.SetRemark(remark)
	}
	return invoice, nil
}

// decrementStock emits one stock decrement per line. Failures are logged
// and returned as warnings; the invoice stands regardless.
func (s *InvoiceService) decrementStock(ctx context.Context, invoice *sales.Invoice) []string {
	if s.stock == nil {
		return nil
	}
	var warnings []string
	for _, item := range invoice.Items {
		err := s.stock.Decrement(ctx, invoice.AgencyID, item.ProductID, item.Quantity, inventory.SourceTypeInvoice, invoice.ID)
		if err != nil {
			s.logger.Warn("stock decrement failed after invoice creation",
				zap.String("invoice_id", invoice.ID.String()),
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("stock adjustment failed for %s: %v", item.ProductName, err))
		}
	}
	return warnings
}

func (s *InvoiceService) publishEvents(ctx context.Context, invoice *sales.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range invoice.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	invoice.ClearDomainEvents()
}

func (s *InvoiceService) publishOrderEvents(ctx context.Context, order *sales.SalesOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}

func resolveGeoPoint(input *GeoPointInput) (valueobject.GeoPoint, error) {
	if input == nil {
		return valueobject.UnavailableGeoPoint(), nil
	}
	return valueobject.NewGeoPoint(input.Latitude, input.Longitude)
}
