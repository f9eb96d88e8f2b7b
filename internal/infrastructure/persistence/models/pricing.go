package models

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/pricing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountRuleModel is the persistence model for the DiscountRule aggregate root.
type DiscountRuleModel struct {
	AgencyAggregateModel
	Name              string            `gorm:"type:varchar(200);not null"`
	Scope             pricing.RuleScope `gorm:"type:varchar(20);not null;index"`
	ScopeRef          *uuid.UUID        `gorm:"type:uuid;index"`
	Kind              pricing.RuleKind  `gorm:"type:varchar(20);not null"`
	Value             decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	BuyQuantity       int               `gorm:"not null;default:0"`
	GetQuantity       int               `gorm:"not null;default:0"`
	ValidFrom         time.Time         `gorm:"not null;index"`
	ValidTo           time.Time         `gorm:"not null;index"`
	MaxUsageCount     *int
	CurrentUsageCount int  `gorm:"not null;default:0"`
	Active            bool `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (DiscountRuleModel) TableName() string {
	return "discount_rules"
}

// ToDomain converts the persistence model to a domain DiscountRule.
func (m *DiscountRuleModel) ToDomain() *pricing.DiscountRule {
	return &pricing.DiscountRule{
		AgencyAggregateRoot: m.ToDomainAgencyAggregateRoot(),
		Name:                m.Name,
		Scope:               m.Scope,
		ScopeRef:            m.ScopeRef,
		Kind:                m.Kind,
		Value:               m.Value,
		BuyQuantity:         m.BuyQuantity,
		GetQuantity:         m.GetQuantity,
		ValidFrom:           m.ValidFrom,
		ValidTo:             m.ValidTo,
		MaxUsageCount:       m.MaxUsageCount,
		CurrentUsageCount:   m.CurrentUsageCount,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain DiscountRule.
func (m *DiscountRuleModel) FromDomain(r *pricing.DiscountRule) {
	m.FromDomainAgencyAggregateRoot(r.AgencyAggregateRoot)
	m.Name = r.Name
	m.Scope = r.Scope
	m.ScopeRef = r.ScopeRef
	m.Kind = r.Kind
	m.Value = r.Value
	m.BuyQuantity = r.BuyQuantity
	m.GetQuantity = r.GetQuantity
	m.ValidFrom = r.ValidFrom
	m.ValidTo = r.ValidTo
	m.MaxUsageCount = r.MaxUsageCount
	m.CurrentUsageCount = r.CurrentUsageCount
	m.Active = r.Active
}

// DiscountRuleModelFromDomain creates a new persistence model from a domain DiscountRule.
func DiscountRuleModelFromDomain(r *pricing.DiscountRule) *DiscountRuleModel {
	m := &DiscountRuleModel{}
	m.FromDomain(r)
	return m
}
