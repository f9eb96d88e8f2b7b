package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/fieldsales/backend/internal/domain/inventory"
	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
)

func mustMoney(v int64) valueobject.Money {
	return valueobject.NewMoneyUSD(decimal.NewFromInt(v))
}

// MockSalesOrderRepository is a mock implementation of sales.SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*sales.SalesOrder, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SalesOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]sales.SalesOrder, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByOrderNumber(ctx context.Context, agencyID uuid.UUID, orderNumber string) (*sales.SalesOrder, error) {
	args := m.Called(ctx, agencyID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByStatus(ctx context.Context, agencyID uuid.UUID, status sales.OrderStatus, filter shared.Filter) (*shared.Paginated[sales.SalesOrder], error) {
	args := m.Called(ctx, agencyID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[sales.SalesOrder]), args.Error(1)
}

func (m *MockSalesOrderRepository) FindPendingApproval(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.SalesOrder], error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[sales.SalesOrder]), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *sales.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) SaveWithLock(ctx context.Context, order *sales.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) NextOrderNumber(ctx context.Context, agencyID uuid.UUID) (string, error) {
	args := m.Called(ctx, agencyID)
	return args.String(0), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of sales.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*sales.Invoice, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]sales.Invoice, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByInvoiceNumber(ctx context.Context, agencyID uuid.UUID, invoiceNumber string) (*sales.Invoice, error) {
	args := m.Called(ctx, agencyID, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrder(ctx context.Context, agencyID, orderID uuid.UUID) ([]*sales.Invoice, error) {
	args := m.Called(ctx, agencyID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sales.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *sales.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) NextInvoiceNumber(ctx context.Context, agencyID uuid.UUID) (string, error) {
	args := m.Called(ctx, agencyID)
	return args.String(0), args.Error(1)
}

// MockSalesReturnRepository is a mock implementation of sales.SalesReturnRepository
type MockSalesReturnRepository struct {
	mock.Mock
}

func (m *MockSalesReturnRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesReturn, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*sales.SalesReturn, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SalesReturn, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]sales.SalesReturn, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) FindByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) ([]*sales.SalesReturn, error) {
	args := m.Called(ctx, agencyID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sales.SalesReturn), args.Error(1)
}

func (m *MockSalesReturnRepository) Save(ctx context.Context, ret *sales.SalesReturn) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *MockSalesReturnRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesReturnRepository) NextReturnNumber(ctx context.Context, agencyID uuid.UUID) (string, error) {
	args := m.Called(ctx, agencyID)
	return args.String(0), args.Error(1)
}

// MockDeliveryRepository is a mock implementation of sales.DeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*sales.Delivery, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Delivery, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]sales.Delivery, error) {
	args := m.Called(ctx, agencyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) ([]*sales.Delivery, error) {
	args := m.Called(ctx, agencyID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sales.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByAgent(ctx context.Context, agencyID, agentID uuid.UUID, filter shared.Filter) (*shared.Paginated[sales.Delivery], error) {
	args := m.Called(ctx, agencyID, agentID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[sales.Delivery]), args.Error(1)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, delivery *sales.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *MockDeliveryRepository) SaveWithLock(ctx context.Context, delivery *sales.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockStockAdjuster is a mock implementation of StockAdjuster
type MockStockAdjuster struct {
	mock.Mock
}

func (m *MockStockAdjuster) Decrement(ctx context.Context, agencyID, productID uuid.UUID, quantity decimal.Decimal, sourceType inventory.SourceType, sourceID uuid.UUID) error {
	args := m.Called(ctx, agencyID, productID, quantity, sourceType, sourceID)
	return args.Error(0)
}

func (m *MockStockAdjuster) Increment(ctx context.Context, agencyID, productID uuid.UUID, quantity decimal.Decimal, sourceType inventory.SourceType, sourceID uuid.UUID) error {
	args := m.Called(ctx, agencyID, productID, quantity, sourceType, sourceID)
	return args.Error(0)
}

// staticLimitProvider returns a fixed agency discount limit
type staticLimitProvider struct {
	limit *decimal.Decimal
}

func (p staticLimitProvider) DiscountLimit(ctx context.Context, agencyID uuid.UUID) (*decimal.Decimal, error) {
	return p.limit, nil
}
