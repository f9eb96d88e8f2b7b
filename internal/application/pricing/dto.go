package pricing

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EvaluateDiscountRequest asks for the discount verdict before submission.
// Provide either a percentage or a fixed amount with the subtotal.
type EvaluateDiscountRequest struct {
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	DiscountAmount  *decimal.Decimal `json:"discount_amount"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
}

// VerdictResponse is the discount verdict
type VerdictResponse struct {
	RequiresApproval bool   `json:"requires_approval"`
	Message          string `json:"message"`
}

// CreateRuleRequest creates a discount or promotional rule
type CreateRuleRequest struct {
	Name          string            `json:"name" binding:"required,min=1,max=200"`
	Scope         pricing.RuleScope `json:"scope" binding:"required"`
	ScopeRef      *uuid.UUID        `json:"scope_ref"`
	Kind          pricing.RuleKind  `json:"kind" binding:"required"`
	Value         decimal.Decimal   `json:"value"`
	BuyQuantity   int               `json:"buy_quantity"`
	GetQuantity   int               `json:"get_quantity"`
	ValidFrom     time.Time         `json:"valid_from" binding:"required"`
	ValidTo       time.Time         `json:"valid_to" binding:"required"`
	MaxUsageCount *int              `json:"max_usage_count"`
}

// RuleResponse represents a rule in responses
type RuleResponse struct {
	ID                uuid.UUID       `json:"id"`
	AgencyID          uuid.UUID       `json:"agency_id"`
	Name              string          `json:"name"`
	Scope             string          `json:"scope"`
	ScopeRef          *uuid.UUID      `json:"scope_ref,omitempty"`
	Kind              string          `json:"kind"`
	Value             decimal.Decimal `json:"value"`
	BuyQuantity       int             `json:"buy_quantity,omitempty"`
	GetQuantity       int             `json:"get_quantity,omitempty"`
	ValidFrom         time.Time       `json:"valid_from"`
	ValidTo           time.Time       `json:"valid_to"`
	MaxUsageCount     *int            `json:"max_usage_count,omitempty"`
	CurrentUsageCount int             `json:"current_usage_count"`
	RemainingUses     *int            `json:"remaining_uses,omitempty"`
	Active            bool            `json:"active"`
	CreatedAt         time.Time       `json:"created_at"`
	Version           int             `json:"version"`
}

// ToRuleResponse converts a domain DiscountRule to a response DTO
func ToRuleResponse(rule *pricing.DiscountRule) RuleResponse {
	return RuleResponse{
		ID:                rule.ID,
		AgencyID:          rule.AgencyID,
		Name:              rule.Name,
		Scope:             string(rule.Scope),
		ScopeRef:          rule.ScopeRef,
		Kind:              string(rule.Kind),
		Value:             rule.Value,
		BuyQuantity:       rule.BuyQuantity,
		GetQuantity:       rule.GetQuantity,
		ValidFrom:         rule.ValidFrom,
		ValidTo:           rule.ValidTo,
		MaxUsageCount:     rule.MaxUsageCount,
		CurrentUsageCount: rule.CurrentUsageCount,
		RemainingUses:     rule.RemainingUses(),
		Active:            rule.Active,
		CreatedAt:         rule.CreatedAt,
		Version:           rule.Version,
	}
}
