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

// ReturnService handles sales return reversal. Field returns are
// auto-approved on submission; stock increments run after persistence with
// the same warning semantics as invoice decrements.
type ReturnService struct {
	returnRepo     sales.SalesReturnRepository
	invoiceRepo    sales.InvoiceRepository
	stock          StockAdjuster
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReturnService creates a new ReturnService
func NewReturnService(returnRepo sales.SalesReturnRepository, invoiceRepo sales.InvoiceRepository, stock StockAdjuster, logger *zap.Logger) *ReturnService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReturnService{
		returnRepo:  returnRepo,
		invoiceRepo: invoiceRepo,
		stock:       stock,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ReturnService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create submits a return. When an invoice is referenced, every item is
// capped at its invoiced quantity; without one the items are accepted
// provisionally until linkage. The return is auto-approved and processed
// in the same call.
func (s *ReturnService) Create(ctx context.Context, agencyID, actorID uuid.UUID, req CreateSalesReturnRequest) (*SalesReturnResponse, error) {
	var invoice *sales.Invoice
	if req.InvoiceID != nil {
		var err error
		invoice, err = s.invoiceRepo.FindByIDForAgency(ctx, agencyID, *req.InvoiceID)
		if err != nil {
			return nil, err
		}
		if invoice.CustomerID != req.CustomerID {
			return nil, shared.NewDomainError("CUSTOMER_MISMATCH", "Invoice belongs to a different customer")
		}
	}

	returnNumber, err := s.returnRepo.NextReturnNumber(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	geo, err := resolveGeoPoint(req.Location)
	if err != nil {
		return nil, err
	}

	ret, err := sales.NewSalesReturn(agencyID, returnNumber, req.InvoiceID, req.CustomerID, req.CustomerName, req.Reason, geo)
	if err != nil {
		return nil, err
	}
	ret.SetCreatedBy(actorID)

	for _, item := range req.Items {
		original := decimal.Zero
		if invoice != nil {
			original = invoice.InvoicedQuantityFor(item.ProductID)
		}
		if _, err := ret.AddItem(item.ProductID, item.ProductName, item.Quantity, original, valueobject.NewMoneyUSD(item.UnitPrice)); err != nil {
			return nil, err
		}
	}

	// Returns carry no manual gate in the field flow.
	if err := ret.Approve(); err != nil {
		return nil, err
	}
	if err := ret.MarkProcessed(); err != nil {
		return nil, err
	}

	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}
	warnings := s.incrementStock(ctx, ret)
	s.publishEvents(ctx, ret)

	response := ToSalesReturnResponse(ret)
	response.StockWarnings = warnings
	return &response, nil
}

// LinkInvoice attaches a deferred invoice reference to a return, validating
// every item against the invoiced quantities
func (s *ReturnService) LinkInvoice(ctx context.Context, agencyID, returnID, invoiceID uuid.UUID) (*SalesReturnResponse, error) {
	ret, err := s.returnRepo.FindByIDForAgency(ctx, agencyID, returnID)
	if err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindByIDForAgency(ctx, agencyID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := ret.LinkInvoice(invoice); err != nil {
		return nil, err
	}

	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}

	response := ToSalesReturnResponse(ret)
	return &response, nil
}

// GetByID retrieves a return by ID within the agency
func (s *ReturnService) GetByID(ctx context.Context, agencyID, returnID uuid.UUID) (*SalesReturnResponse, error) {
	ret, err := s.returnRepo.FindByIDForAgency(ctx, agencyID, returnID)
	if err != nil {
		return nil, err
	}
	response := ToSalesReturnResponse(ret)
	return &response, nil
}

// List retrieves returns with pagination
func (s *ReturnService) List(ctx context.Context, agencyID uuid.UUID, page, pageSize int) (*shared.Paginated[SalesReturnResponse], error) {
	filter := buildDomainFilter(page, pageSize, "created_at", "desc", "")
	returns, err := s.returnRepo.FindAllForAgency(ctx, agencyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.returnRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]SalesReturnResponse, len(returns))
	for i := range returns {
		responses[i] = ToSalesReturnResponse(&returns[i])
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// incrementStock emits one stock increment per line, tagged as a return so
// stock math can tell directions apart. Failures become warnings.
func (s *ReturnService) incrementStock(ctx context.Context, ret *sales.SalesReturn) []string {
	if s.stock == nil {
		return nil
	}
	var warnings []string
	for _, item := range ret.Items {
		err := s.stock.Increment(ctx, ret.AgencyID, item.ProductID, item.Quantity, inventory.SourceTypeReturn, ret.ID)
		if err != nil {
			s.logger.Warn("stock increment failed after return processing",
				zap.String("return_id", ret.ID.String()),
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("stock adjustment failed for %s: %v", item.ProductName, err))
		}
	}
	return warnings
}

func (s *ReturnService) publishEvents(ctx context.Context, ret *sales.SalesReturn) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range ret.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	ret.ClearDomainEvents()
}
