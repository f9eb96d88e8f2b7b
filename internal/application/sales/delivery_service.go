package sales

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/sales"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DeliveryService handles the delivery lifecycle for issued invoices
type DeliveryService struct {
	deliveryRepo   sales.DeliveryRepository
	invoiceRepo    sales.InvoiceRepository
	eventPublisher shared.EventPublisher
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(deliveryRepo sales.DeliveryRepository, invoiceRepo sales.InvoiceRepository) *DeliveryService {
	return &DeliveryService{
		deliveryRepo: deliveryRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DeliveryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create assigns a delivery for an existing invoice to an agent
func (s *DeliveryService) Create(ctx context.Context, agencyID, actorID uuid.UUID, req CreateDeliveryRequest) (*DeliveryResponse, error) {
	if _, err := s.invoiceRepo.FindByIDForAgency(ctx, agencyID, req.InvoiceID); err != nil {
		return nil, err
	}

	delivery, err := sales.NewDelivery(agencyID, req.InvoiceID, req.AgentID)
	if err != nil {
		return nil, err
	}
	delivery.SetCreatedBy(actorID)

	if err := s.deliveryRepo.Save(ctx, delivery); err != nil {
		return nil, err
	}

	response := ToDeliveryResponse(delivery)
	return &response, nil
}

// Dispatch marks a delivery as out for delivery
func (s *DeliveryService) Dispatch(ctx context.Context, agencyID, deliveryID uuid.UUID) (*DeliveryResponse, error) {
	return s.transition(ctx, agencyID, deliveryID, func(d *sales.Delivery) error {
		return d.Dispatch()
	})
}

// Complete confirms a hand-off with signature, receiver and location proof
func (s *DeliveryService) Complete(ctx context.Context, agencyID, deliveryID uuid.UUID, req CompleteDeliveryRequest) (*DeliveryResponse, error) {
	geo, err := resolveGeoPoint(req.Location)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, agencyID, deliveryID, func(d *sales.Delivery) error {
		return d.MarkDelivered(valueobject.NewSignature(req.Signature), req.ReceiverName, req.ReceiverPhone, geo)
	})
}

// Fail records a failed delivery attempt
func (s *DeliveryService) Fail(ctx context.Context, agencyID, deliveryID uuid.UUID, reason string) (*DeliveryResponse, error) {
	return s.transition(ctx, agencyID, deliveryID, func(d *sales.Delivery) error {
		return d.MarkFailed(reason)
	})
}

// Cancel cancels a delivery that has not completed
func (s *DeliveryService) Cancel(ctx context.Context, agencyID, deliveryID uuid.UUID) (*DeliveryResponse, error) {
	return s.transition(ctx, agencyID, deliveryID, func(d *sales.Delivery) error {
		return d.Cancel()
	})
}

// GetByID retrieves a delivery by ID within the agency
func (s *DeliveryService) GetByID(ctx context.Context, agencyID, deliveryID uuid.UUID) (*DeliveryResponse, error) {
	delivery, err := s.deliveryRepo.FindByIDForAgency(ctx, agencyID, deliveryID)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(delivery)
	return &response, nil
}

// ListByAgent retrieves deliveries assigned to an agent
func (s *DeliveryService) ListByAgent(ctx context.Context, agencyID, agentID uuid.UUID, page, pageSize int) (*shared.Paginated[DeliveryResponse], error) {
	filter := buildDomainFilter(page, pageSize, "created_at", "desc", "")
	result, err := s.deliveryRepo.FindByAgent(ctx, agencyID, agentID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]DeliveryResponse, len(result.Items))
	for i := range result.Items {
		responses[i] = ToDeliveryResponse(&result.Items[i])
	}
	mapped := shared.NewPaginated(responses, result.Total, result.Page, result.PageSize)
	return &mapped, nil
}

func (s *DeliveryService) transition(ctx context.Context, agencyID, deliveryID uuid.UUID, apply func(*sales.Delivery) error) (*DeliveryResponse, error) {
	delivery, err := s.deliveryRepo.FindByIDForAgency(ctx, agencyID, deliveryID)
	if err != nil {
		return nil, err
	}

	if err := apply(delivery); err != nil {
		return nil, err
	}

	if err := s.deliveryRepo.SaveWithLock(ctx, delivery); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		for _, event := range delivery.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		delivery.ClearDomainEvents()
	}

	response := ToDeliveryResponse(delivery)
	return &response, nil
}
