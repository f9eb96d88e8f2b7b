package pricing

import (
	"fmt"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RuleScope determines which documents a rule can apply to
type RuleScope string

const (
	RuleScopeGlobal   RuleScope = "GLOBAL"
	RuleScopeCustomer RuleScope = "CUSTOMER"
	RuleScopeProduct  RuleScope = "PRODUCT"
	RuleScopeAgent    RuleScope = "AGENT"
)

// IsValid checks if the scope is a valid RuleScope
func (s RuleScope) IsValid() bool {
	switch s {
	case RuleScopeGlobal, RuleScopeCustomer, RuleScopeProduct, RuleScopeAgent:
		return true
	}
	return false
}

// RuleKind determines how a rule's value is interpreted
type RuleKind string

const (
	RuleKindPercentage  RuleKind = "PERCENTAGE"
	RuleKindFixedAmount RuleKind = "FIXED_AMOUNT"
	RuleKindBuyXGetY    RuleKind = "BUY_X_GET_Y"
)

// IsValid checks if the kind is a valid RuleKind
func (k RuleKind) IsValid() bool {
	switch k {
	case RuleKindPercentage, RuleKindFixedAmount, RuleKindBuyXGetY:
		return true
	}
	return false
}

// DiscountRule represents a named discount or promotional rule.
// Rules are agency-scoped, carry a validity window and an optional usage
// cap, and target a scope (global, a customer, a product, or an agent).
type DiscountRule struct {
	shared.AgencyAggregateRoot
	Name              string
	Scope             RuleScope
	ScopeRef          *uuid.UUID // Customer/product/agent the rule targets; nil for GLOBAL
	Kind              RuleKind
	Value             decimal.Decimal // Percentage or fixed amount depending on Kind
	BuyQuantity       int             // BUY_X_GET_Y only
	GetQuantity       int             // BUY_X_GET_Y only
	ValidFrom         time.Time
	ValidTo           time.Time
	MaxUsageCount     *int // nil = unlimited
	CurrentUsageCount int
	Active            bool
}

// NewDiscountRule creates a new discount rule
func NewDiscountRule(agencyID uuid.UUID, name string, scope RuleScope, scopeRef *uuid.UUID, kind RuleKind, value decimal.Decimal, validFrom, validTo time.Time) (*DiscountRule, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Rule name cannot be empty")
	}
	if !scope.IsValid() {
		return nil, shared.NewDomainError("INVALID_SCOPE", fmt.Sprintf("Invalid rule scope: %s", scope))
	}
	if scope != RuleScopeGlobal && scopeRef == nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Scoped rules require a scope reference")
	}
	if scope == RuleScopeGlobal && scopeRef != nil {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Global rules cannot carry a scope reference")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", fmt.Sprintf("Invalid rule kind: %s", kind))
	}
	if kind != RuleKindBuyXGetY && value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Rule value cannot be negative")
	}
	if validTo.Before(validFrom) {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Validity window end cannot precede its start")
	}

	rule := &DiscountRule{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		Name:                name,
		Scope:               scope,
		ScopeRef:            scopeRef,
		Kind:                kind,
		Value:               value,
		ValidFrom:           validFrom,
		ValidTo:             validTo,
		Active:              true,
	}

	rule.AddDomainEvent(NewDiscountRuleCreatedEvent(rule))

	return rule, nil
}

// SetBuyGetQuantities configures the BOGO parameters.
// Only valid for BUY_X_GET_Y rules.
func (r *DiscountRule) SetBuyGetQuantities(buy, get int) error {
	if r.Kind != RuleKindBuyXGetY {
		return shared.NewDomainError("INVALID_KIND", "Buy/get quantities only apply to BUY_X_GET_Y rules")
	}
	if buy <= 0 || get <= 0 {
		return shared.NewDomainError("INVALID_VALUE", "Buy and get quantities must be positive")
	}
	r.BuyQuantity = buy
	r.GetQuantity = get
	r.UpdatedAt = time.Now()
	return nil
}

// SetUsageCap sets the maximum number of applications for the rule
func (r *DiscountRule) SetUsageCap(max int) error {
	if max <= 0 {
		return shared.NewDomainError("INVALID_VALUE", "Usage cap must be positive")
	}
	if max < r.CurrentUsageCount {
		return shared.NewDomainError("INVALID_VALUE", "Usage cap cannot be below current usage count")
	}
	r.MaxUsageCount = &max
	r.UpdatedAt = time.Now()
	return nil
}

// RecordUsage increments the usage counter, failing at the cap
func (r *DiscountRule) RecordUsage() error {
	if r.MaxUsageCount != nil && r.CurrentUsageCount >= *r.MaxUsageCount {
		return shared.NewDomainError("USAGE_CAP_REACHED", "Rule usage cap has been reached")
	}
	r.CurrentUsageCount++
	r.UpdatedAt = time.Now()
	return nil
}

// Activate enables the rule
func (r *DiscountRule) Activate() {
	r.Active = true
	r.UpdatedAt = time.Now()
}

// Deactivate disables the rule without deleting it
func (r *DiscountRule) Deactivate() {
	r.Active = false
	r.UpdatedAt = time.Now()
}

// IsApplicable reports whether the rule can be applied at the given time
// for the given scope reference (nil matches only GLOBAL rules).
func (r *DiscountRule) IsApplicable(at time.Time, scopeRef *uuid.UUID) bool {
	if !r.Active {
		return false
	}
	if at.Before(r.ValidFrom) || at.After(r.ValidTo) {
		return false
	}
	if r.MaxUsageCount != nil && r.CurrentUsageCount >= *r.MaxUsageCount {
		return false
	}
	if r.Scope == RuleScopeGlobal {
		return true
	}
	return scopeRef != nil && r.ScopeRef != nil && *scopeRef == *r.ScopeRef
}

// RemainingUses returns how many applications are left, or nil when unlimited
func (r *DiscountRule) RemainingUses() *int {
	if r.MaxUsageCount == nil {
		return nil
	}
	remaining := *r.MaxUsageCount - r.CurrentUsageCount
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}
