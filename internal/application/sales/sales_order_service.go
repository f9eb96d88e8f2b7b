package sales

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/pricing"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountLimitProvider resolves the configured discount ceiling for an
// agency. Implementations may cache; nil means no agency-specific limit.
type DiscountLimitProvider interface {
	DiscountLimit(ctx context.Context, agencyID uuid.UUID) (*decimal.Decimal, error)
}

// SalesOrderService handles order lifecycle operations: creation with the
// discount verdict, the approval queue, partial invoicing bookkeeping and
// manual closure.
type SalesOrderService struct {
	orderRepo      sales.SalesOrderRepository
	limitProvider  DiscountLimitProvider
	policy         *pricing.DiscountPolicy
	eventPublisher shared.EventPublisher
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(orderRepo sales.SalesOrderRepository, limitProvider DiscountLimitProvider, policy *pricing.DiscountPolicy) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:     orderRepo,
		limitProvider: limitProvider,
		policy:        policy,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a sales order. The discount verdict decides the initial
// status: within the agency limit the order is approved immediately, above
// it the order waits in the approval queue.
func (s *SalesOrderService) Create(ctx context.Context, agencyID, actorID uuid.UUID, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	orderNumber, err := s.orderRepo.NextOrderNumber(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	order, err := sales.NewSalesOrder(agencyID, orderNumber, req.CustomerID, req.CustomerName)
	if err != nil {
		return nil, err
	}
	order.SetCreatedBy(actorID)

	for _, item := range req.Items {
		unitPrice := valueobject.NewMoneyUSD(item.UnitPrice)
		if _, err := order.AddItem(item.ProductID, item.ProductName, item.Color, item.Size, item.Quantity, unitPrice); err != nil {
			return nil, err
		}
	}

	limit, err := s.limitProvider.DiscountLimit(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	var verdict pricing.Verdict
	switch {
	case req.DiscountPercent != nil:
		if err := order.ApplyPercentDiscount(*req.DiscountPercent); err != nil {
			return nil, err
		}
		verdict = s.policy.Evaluate(*req.DiscountPercent, limit)
	case req.DiscountAmount != nil:
		if err := order.ApplyFixedDiscount(valueobject.NewMoneyUSD(*req.DiscountAmount)); err != nil {
			return nil, err
		}
		verdict = s.policy.EvaluateFixedAmount(*req.DiscountAmount, order.Subtotal, limit)
	default:
		verdict = s.policy.Evaluate(decimal.Zero, limit)
	}

	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	if err := order.Submit(verdict.RequiresApproval); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	response.ApprovalMessage = verdict.Message
	return &response, nil
}

// GetByID retrieves a sales order by ID within the agency
func (s *SalesOrderService) GetByID(ctx context.Context, agencyID, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForAgency(ctx, agencyID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, agencyID uuid.UUID, filter SalesOrderListFilter) (*shared.Paginated[SalesOrderResponse], error) {
	domainFilter := buildDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}

	var (
		page *shared.Paginated[sales.SalesOrder]
		err  error
	)
	if filter.Status != nil {
		page, err = s.orderRepo.FindByStatus(ctx, agencyID, *filter.Status, domainFilter)
	} else {
		page, err = findOrderPage(ctx, s.orderRepo, agencyID, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	return mapOrderPage(page), nil
}

// ListPendingApproval returns the approval queue: pending orders whose
// discount verdict demanded a superuser decision
func (s *SalesOrderService) ListPendingApproval(ctx context.Context, agencyID uuid.UUID, page, pageSize int) (*shared.Paginated[SalesOrderResponse], error) {
	filter := buildDomainFilter(page, pageSize, "created_at", "asc", "")
	result, err := s.orderRepo.FindPendingApproval(ctx, agencyID, filter)
	if err != nil {
		return nil, err
	}
	return mapOrderPage(result), nil
}

// Approve applies a superuser approval to a pending order
func (s *SalesOrderService) Approve(ctx context.Context, agencyID, orderID, actorID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForAgency(ctx, agencyID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Approve(actorID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Reject applies a superuser rejection, cancelling the pending order
func (s *SalesOrderService) Reject(ctx context.Context, agencyID, orderID, actorID uuid.UUID, reason string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForAgency(ctx, agencyID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Reject(actorID, reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Cancel cancels a pending order without an approval decision
func (s *SalesOrderService) Cancel(ctx context.Context, agencyID, orderID uuid.UUID, reason string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForAgency(ctx, agencyID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(reason); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Close manually terminates an order that is not yet fully invoiced
func (s *SalesOrderService) Close(ctx context.Context, agencyID, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByIDForAgency(ctx, agencyID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Close(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

func (s *SalesOrderService) publishEvents(ctx context.Context, order *sales.SalesOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		// Event delivery is best-effort; handlers run asynchronously.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}

func buildDomainFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = search
	return filter
}

func findOrderPage(ctx context.Context, repo sales.SalesOrderRepository, agencyID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.SalesOrder], error) {
	items, err := repo.FindAllForAgency(ctx, agencyID, filter)
	if err != nil {
		return nil, err
	}
	total, err := repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

func mapOrderPage(page *shared.Paginated[sales.SalesOrder]) *shared.Paginated[SalesOrderResponse] {
	responses := make([]SalesOrderResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = ToSalesOrderResponse(&page.Items[i])
	}
	mapped := shared.NewPaginated(responses, page.Total, page.Page, page.PageSize)
	return &mapped
}
