package sales

import (
	"fmt"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/fieldsales/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DeliveryStatus represents the status of a delivery
type DeliveryStatus string

const (
	DeliveryStatusPending        DeliveryStatus = "PENDING"
	DeliveryStatusOutForDelivery DeliveryStatus = "OUT_FOR_DELIVERY"
	DeliveryStatusDelivered      DeliveryStatus = "DELIVERED"
	DeliveryStatusFailed         DeliveryStatus = "FAILED"
	DeliveryStatusCancelled      DeliveryStatus = "CANCELLED"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusOutForDelivery, DeliveryStatusDelivered,
		DeliveryStatusFailed, DeliveryStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	switch s {
	case DeliveryStatusPending:
		return target == DeliveryStatusOutForDelivery || target == DeliveryStatusCancelled
	case DeliveryStatusOutForDelivery:
		return target == DeliveryStatusDelivered || target == DeliveryStatusFailed || target == DeliveryStatusCancelled
	case DeliveryStatusDelivered, DeliveryStatusFailed, DeliveryStatusCancelled:
		return false
	}
	return false
}

// Delivery tracks the hand-off of invoiced goods by an assigned agent.
// DELIVERED is terminal and requires proof: a non-empty signature and a
// receiver name.
type Delivery struct {
	shared.AgencyAggregateRoot
	InvoiceID     uuid.UUID
	AgentID       uuid.UUID
	Status        DeliveryStatus
	Location      valueobject.GeoPoint
	Signature     valueobject.Signature
	ReceiverName  string
	ReceiverPhone string
	DispatchedAt  *time.Time
	DeliveredAt   *time.Time
	FailedAt      *time.Time
	FailureReason string
	CancelledAt   *time.Time
}

// NewDelivery creates a pending delivery for an invoice
func NewDelivery(agencyID, invoiceID, agentID uuid.UUID) (*Delivery, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if agentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGENT", "Agent ID cannot be empty")
	}

	return &Delivery{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		InvoiceID:           invoiceID,
		AgentID:             agentID,
		Status:              DeliveryStatusPending,
		Location:            valueobject.UnavailableGeoPoint(),
	}, nil
}

// Dispatch marks the delivery as out for delivery
func (d *Delivery) Dispatch() error {
	if !d.Status.CanTransitionTo(DeliveryStatusOutForDelivery) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot dispatch delivery in %s status", d.Status))
	}

	now := time.Now()
	d.Status = DeliveryStatusOutForDelivery
	d.DispatchedAt = &now
	d.UpdatedAt = now

	return nil
}

// MarkDelivered completes the delivery with proof of hand-off
func (d *Delivery) MarkDelivered(signature valueobject.Signature, receiverName, receiverPhone string, location valueobject.GeoPoint) error {
	if !d.Status.CanTransitionTo(DeliveryStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark delivery in %s status as delivered", d.Status))
	}
	if signature.IsEmpty() {
		return shared.NewDomainError("SIGNATURE_REQUIRED", "Delivery confirmation requires a receiver signature")
	}
	if receiverName == "" {
		return shared.NewDomainError("RECEIVER_REQUIRED", "Delivery confirmation requires a receiver name")
	}

	now := time.Now()
	d.Status = DeliveryStatusDelivered
	d.Signature = signature
	d.ReceiverName = receiverName
	d.ReceiverPhone = receiverPhone
	d.Location = location
	d.DeliveredAt = &now
	d.UpdatedAt = now

	d.AddDomainEvent(NewDeliveryCompletedEvent(d))

	return nil
}

// MarkFailed records a failed delivery attempt
func (d *Delivery) MarkFailed(reason string) error {
	if !d.Status.CanTransitionTo(DeliveryStatusFailed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot fail delivery in %s status", d.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Failure reason cannot be empty")
	}

	now := time.Now()
	d.Status = DeliveryStatusFailed
	d.FailureReason = reason
	d.FailedAt = &now
	d.UpdatedAt = now

	return nil
}

// Cancel cancels a delivery that has not completed
func (d *Delivery) Cancel() error {
	if !d.Status.CanTransitionTo(DeliveryStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel delivery in %s status", d.Status))
	}

	now := time.Now()
	d.Status = DeliveryStatusCancelled
	d.CancelledAt = &now
	d.UpdatedAt = now

	return nil
}
