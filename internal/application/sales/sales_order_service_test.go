package sales

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fieldsales/backend/internal/domain/pricing"
	domainsales "github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
)

func newOrderService(repo *MockSalesOrderRepository, limit *decimal.Decimal) *SalesOrderService {
	return NewSalesOrderService(repo, staticLimitProvider{limit: limit}, pricing.NewDiscountPolicy(pricing.PolicyOptions{}))
}

func orderRequest(discountPercent *decimal.Decimal) CreateSalesOrderRequest {
	return CreateSalesOrderRequest{
		CustomerID:   uuid.New(),
		CustomerName: "Acme Retail",
		Items: []CreateSalesOrderItemInput{{
			ProductID:   uuid.New(),
			ProductName: "Denim Jacket",
			Color:       "Blue",
			Size:        "M",
			Quantity:    decimal.NewFromInt(10),
			UnitPrice:   decimal.NewFromInt(100),
		}},
		DiscountPercent: discountPercent,
	}
}

func TestSalesOrderService_Create(t *testing.T) {
	ctx := context.Background()
	agencyID := uuid.New()
	actorID := uuid.New()

	t.Run("discount within default limit is auto-approved", func(t *testing.T) {
		repo := new(MockSalesOrderRepository)
		repo.On("NextOrderNumber", ctx, agencyID).Return("SO-2026-00001", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*sales.SalesOrder")).Return(nil)

		svc := newOrderService(repo, nil)
		p := decimal.NewFromInt(15)
		resp, err := svc.Create(ctx, agencyID, actorID, orderRequest(&p))
		require.NoError(t, err)

		assert.Equal(t, domainsales.OrderStatusApproved.String(), resp.Status)
		assert.False(t, resp.RequiresApproval)
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(850)))
		repo.AssertExpectations(t)
	})

	t.Run("discount over default limit waits for approval", func(t *testing.T) {
		repo := new(MockSalesOrderRepository)
		repo.On("NextOrderNumber", ctx, agencyID).Return("SO-2026-00002", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*sales.SalesOrder")).Return(nil)

		svc := newOrderService(repo, nil)
		p := decimal.NewFromInt(25)
		resp, err := svc.Create(ctx, agencyID, actorID, orderRequest(&p))
		require.NoError(t, err)

		assert.Equal(t, domainsales.OrderStatusPending.String(), resp.Status)
		assert.True(t, resp.RequiresApproval)
		assert.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(250)))
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(750)))
		assert.NotEmpty(t, resp.ApprovalMessage)
	})

	t.Run("agency-specific limit overrides the default", func(t *testing.T) {
		repo := new(MockSalesOrderRepository)
		repo.On("NextOrderNumber", ctx, agencyID).Return("SO-2026-00003", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*sales.SalesOrder")).Return(nil)

		limit := decimal.NewFromInt(30)
		svc := newOrderService(repo, &limit)
		p := decimal.NewFromInt(25)
		resp, err := svc.Create(ctx, agencyID, actorID, orderRequest(&p))
		require.NoError(t, err)

		assert.Equal(t, domainsales.OrderStatusApproved.String(), resp.Status)
		assert.False(t, resp.RequiresApproval)
	})

	t.Run("fixed discount is normalized against the subtotal", func(t *testing.T) {
		repo := new(MockSalesOrderRepository)
		repo.On("NextOrderNumber", ctx, agencyID).Return("SO-2026-00004", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*sales.SalesOrder")).Return(nil)

		svc := newOrderService(repo, nil)
		req := orderRequest(nil)
		amount := decimal.NewFromInt(250) // 25% of the 1000 subtotal
		req.DiscountAmount = &amount
		resp, err := svc.Create(ctx, agencyID, actorID, req)
		require.NoError(t, err)

		assert.True(t, resp.RequiresApproval)
		assert.Equal(t, domainsales.OrderStatusPending.String(), resp.Status)
	})

	t.Run("no discount is auto-approved", func(t *testing.T) {
		repo := new(MockSalesOrderRepository)
		repo.On("NextOrderNumber", ctx, agencyID).Return("SO-2026-00005", nil)
		repo.On("Save", ctx, mock.AnythingOfType("*sales.SalesOrder")).Return(nil)

		svc := newOrderService(repo, nil)
		resp, err := svc.Create(ctx, agencyID, actorID, orderRequest(nil))
		require.NoError(t, err)

		assert.Equal(t, domainsales.OrderStatusApproved.String(), resp.Status)
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("invalid item aborts before save", func(t *testing.T) {
		repo := new(MockSalesOrderRepository)
		repo.On("NextOrderNumber", ctx, agencyID).Return("SO-2026-00006", nil)

		svc := newOrderService(repo, nil)
		req := orderRequest(nil)
		req.Items[0].Quantity = decimal.Zero
		_, err := svc.Create(ctx, agencyID, actorID, req)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSalesOrderService_ApproveReject(t *testing.T) {
	ctx := context.Background()
	agencyID := uuid.New()
	superuser := uuid.New()

	pendingOrder := func(t *testing.T) *domainsales.SalesOrder {
		t.Helper()
		order, err := domainsales.NewSalesOrder(agencyID, "SO-2026-00010", uuid.New(), "Acme Retail")
		require.NoError(t, err)
		_, err = order.AddItem(uuid.New(), "Denim Jacket", "", "", decimal.NewFromInt(1), mustMoney(1000))
		require.NoError(t, err)
		require.NoError(t, order.ApplyPercentDiscount(decimal.NewFromInt(25)))
		require.NoError(t, order.Submit(true))
		order.ClearDomainEvents()
		return order
	}

	t.Run("approve stamps the superuser", func(t *testing.T) {
		order := pendingOrder(t)
		repo := new(MockSalesOrderRepository)
		repo.On("FindByIDForAgency", ctx, agencyID, order.ID).Return(order, nil)
		repo.On("SaveWithLock", ctx, order).Return(nil)

		svc := newOrderService(repo, nil)
		resp, err := svc.Approve(ctx, agencyID, order.ID, superuser)
		require.NoError(t, err)

		assert.Equal(t, domainsales.OrderStatusApproved.String(), resp.Status)
		require.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, superuser, *resp.ApprovedBy)
		repo.AssertExpectations(t)
	})

	t.Run("reject cancels with reason", func(t *testing.T) {
		order := pendingOrder(t)
		repo := new(MockSalesOrderRepository)
		repo.On("FindByIDForAgency", ctx, agencyID, order.ID).Return(order, nil)
		repo.On("SaveWithLock", ctx, order).Return(nil)

		svc := newOrderService(repo, nil)
		resp, err := svc.Reject(ctx, agencyID, order.ID, superuser, "discount too aggressive")
		require.NoError(t, err)

		assert.Equal(t, domainsales.OrderStatusCancelled.String(), resp.Status)
		assert.Equal(t, "discount too aggressive", resp.RejectReason)
	})

	t.Run("approve on missing order fails", func(t *testing.T) {
		repo := new(MockSalesOrderRepository)
		orderID := uuid.New()
		repo.On("FindByIDForAgency", ctx, agencyID, orderID).Return(nil, shared.ErrNotFound)

		svc := newOrderService(repo, nil)
		_, err := svc.Approve(ctx, agencyID, orderID, superuser)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("approve on already approved order fails", func(t *testing.T) {
		order := pendingOrder(t)
		require.NoError(t, order.Approve(superuser))
		repo := new(MockSalesOrderRepository)
		repo.On("FindByIDForAgency", ctx, agencyID, order.ID).Return(order, nil)

		svc := newOrderService(repo, nil)
		_, err := svc.Approve(ctx, agencyID, order.ID, superuser)
		assert.Error(t, err)
		repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestSalesOrderService_ListPendingApproval(t *testing.T) {
	ctx := context.Background()
	agencyID := uuid.New()

	order, err := domainsales.NewSalesOrder(agencyID, "SO-2026-00020", uuid.New(), "Acme Retail")
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Denim Jacket", "", "", decimal.NewFromInt(1), mustMoney(500))
	require.NoError(t, err)
	require.NoError(t, order.Submit(true))

	page := shared.NewPaginated([]domainsales.SalesOrder{*order}, 1, 1, 20)
	repo := new(MockSalesOrderRepository)
	repo.On("FindPendingApproval", ctx, agencyID, mock.AnythingOfType("shared.Filter")).Return(&page, nil)

	svc := newOrderService(repo, nil)
	result, err := svc.ListPendingApproval(ctx, agencyID, 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "SO-2026-00020", result.Items[0].OrderNumber)
	assert.True(t, result.Items[0].RequiresApproval)
}
