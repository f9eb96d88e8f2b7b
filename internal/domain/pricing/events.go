package pricing

import (
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeDiscountRule = "DiscountRule"

// Event type constants
const (
	EventTypeDiscountRuleCreated = "DiscountRuleCreated"
	EventTypeDiscountRuleUsed    = "DiscountRuleUsed"
)

// DiscountRuleCreatedEvent is raised when a new discount rule is created
type DiscountRuleCreatedEvent struct {
	shared.BaseDomainEvent
	RuleID uuid.UUID `json:"rule_id"`
	Name   string    `json:"name"`
	Scope  RuleScope `json:"scope"`
	Kind   RuleKind  `json:"kind"`
}

// NewDiscountRuleCreatedEvent creates a new DiscountRuleCreatedEvent
func NewDiscountRuleCreatedEvent(rule *DiscountRule) *DiscountRuleCreatedEvent {
	return &DiscountRuleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDiscountRuleCreated, AggregateTypeDiscountRule, rule.ID, rule.AgencyID),
		RuleID:          rule.ID,
		Name:            rule.Name,
		Scope:           rule.Scope,
		Kind:            rule.Kind,
	}
}

// EventType returns the event type name
func (e *DiscountRuleCreatedEvent) EventType() string {
	return EventTypeDiscountRuleCreated
}
