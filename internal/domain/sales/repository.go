package sales

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SalesOrderRepository persists sales orders with their line items
type SalesOrderRepository interface {
	shared.AgencyRepository[SalesOrder]
	FindByOrderNumber(ctx context.Context, agencyID uuid.UUID, orderNumber string) (*SalesOrder, error)
	FindByStatus(ctx context.Context, agencyID uuid.UUID, status OrderStatus, filter shared.Filter) (*shared.Paginated[SalesOrder], error)
	FindPendingApproval(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (*shared.Paginated[SalesOrder], error)
	SaveWithLock(ctx context.Context, order *SalesOrder) error
	NextOrderNumber(ctx context.Context, agencyID uuid.UUID) (string, error)
}

// InvoiceRepository persists invoices with their line items
type InvoiceRepository interface {
	shared.AgencyRepository[Invoice]
	FindByInvoiceNumber(ctx context.Context, agencyID uuid.UUID, invoiceNumber string) (*Invoice, error)
	FindByOrder(ctx context.Context, agencyID, orderID uuid.UUID) ([]*Invoice, error)
	NextInvoiceNumber(ctx context.Context, agencyID uuid.UUID) (string, error)
}

// SalesReturnRepository persists sales returns with their line items
type SalesReturnRepository interface {
	shared.AgencyRepository[SalesReturn]
	FindByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) ([]*SalesReturn, error)
	NextReturnNumber(ctx context.Context, agencyID uuid.UUID) (string, error)
}

// DeliveryRepository persists deliveries
type DeliveryRepository interface {
	shared.AgencyRepository[Delivery]
	FindByInvoice(ctx context.Context, agencyID, invoiceID uuid.UUID) ([]*Delivery, error)
	FindByAgent(ctx context.Context, agencyID, agentID uuid.UUID, filter shared.Filter) (*shared.Paginated[Delivery], error)
	SaveWithLock(ctx context.Context, delivery *Delivery) error
}
