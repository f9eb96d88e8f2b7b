package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot is the contract every aggregate satisfies: identity,
// optimistic-lock versioning and a buffer of uncommitted domain events.
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot carries the version column and the event buffer.
// Events accumulate in memory until the repository persists the aggregate
// and hands them to the bus.
type BaseAggregateRoot struct {
	BaseEntity
	Version      int           `gorm:"not null;default:1"`
	domainEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot starts a fresh aggregate at version 1.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity:   NewBaseEntity(),
		Version:      1,
		domainEvents: make([]DomainEvent, 0),
	}
}

// GetVersion returns the optimistic-lock version.
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion bumps the version after a successful state change.
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent queues an event for publication after the next save.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the queued, not yet published events.
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents empties the queue once events have been handed off.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// AgencyAggregateRoot extends BaseAggregateRoot with agency scoping.
// Every document in the system belongs to exactly one agency (the
// franchise unit that owns customers, orders and the inventory pool).
type AgencyAggregateRoot struct {
	BaseAggregateRoot
	AgencyID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"` // User who created this record
}

// NewAgencyAggregateRoot starts a fresh aggregate owned by the agency.
func NewAgencyAggregateRoot(agencyID uuid.UUID) AgencyAggregateRoot {
	return AgencyAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		AgencyID:          agencyID,
	}
}

// NewAgencyAggregateRootWithCreator also stamps the creating user.
func NewAgencyAggregateRootWithCreator(agencyID, createdBy uuid.UUID) AgencyAggregateRoot {
	return AgencyAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		AgencyID:          agencyID,
		CreatedBy:         &createdBy,
	}
}

// SetCreatedBy stamps the creating user after construction.
func (a *AgencyAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	a.CreatedBy = &userID
}

// GetCreatedBy returns the creating user, nil for system-created records.
func (a *AgencyAggregateRoot) GetCreatedBy() *uuid.UUID {
	return a.CreatedBy
}
