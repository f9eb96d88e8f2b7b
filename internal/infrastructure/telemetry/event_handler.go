package telemetry

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SalesEventMetricsHandler records business metrics from sales domain events.
// It subscribes to the in-process event bus so that every order, invoice,
// return and delivery counted in metrics went through the same code path as
// the persisted state change.
type SalesEventMetricsHandler struct {
	metrics *BusinessMetrics
	logger  *zap.Logger
}

// NewSalesEventMetricsHandler creates a handler that feeds the given
// BusinessMetrics from domain events.
func NewSalesEventMetricsHandler(metrics *BusinessMetrics, logger *zap.Logger) *SalesEventMetricsHandler {
	return &SalesEventMetricsHandler{
		metrics: metrics,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SalesEventMetricsHandler) EventTypes() []string {
	return []string{
		sales.EventTypeSalesOrderCreated,
		sales.EventTypeSalesOrderApproved,
		sales.EventTypeSalesOrderRejected,
		sales.EventTypeInvoiceIssued,
		sales.EventTypeSalesReturnProcessed,
		sales.EventTypeDeliveryCompleted,
	}
}

// Handle dispatches a domain event to the matching metric recorder.
// Events of unknown types are logged and dropped; metric recording must
// never fail the business operation that raised the event.
func (h *SalesEventMetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *sales.SalesOrderCreatedEvent:
		h.metrics.RecordOrderCreated(ctx, e.AgencyID(), e.RequiresApproval)
	case *sales.SalesOrderApprovedEvent:
		h.metrics.RecordApprovalDecision(ctx, e.AgencyID(), ApprovalActionApproved)
	case *sales.SalesOrderRejectedEvent:
		h.metrics.RecordApprovalDecision(ctx, e.AgencyID(), ApprovalActionRejected)
	case *sales.InvoiceIssuedEvent:
		kind := InvoiceKindDirect
		if e.OrderID != nil {
			kind = InvoiceKindOrder
		}
		h.metrics.RecordInvoiceIssued(ctx, e.AgencyID(), kind, e.Total)
	case *sales.SalesReturnProcessedEvent:
		h.metrics.RecordReturnProcessed(ctx, e.AgencyID())
	case *sales.DeliveryCompletedEvent:
		h.metrics.RecordDeliveryCompleted(ctx, e.AgencyID(), string(sales.DeliveryStatusDelivered))
	default:
		h.logger.Warn("unexpected event type for metrics handler",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}
