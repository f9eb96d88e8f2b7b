package models

import (
	"github.com/fieldsales/backend/internal/domain/partner"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AgencyModel is the persistence model for the Agency aggregate root.
type AgencyModel struct {
	AggregateModel
	Name                 string           `gorm:"type:varchar(200);not null"`
	Code                 string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	DiscountLimitPercent *decimal.Decimal `gorm:"type:decimal(9,4)"`
	Active               bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AgencyModel) TableName() string {
	return "agencies"
}

// ToDomain converts the persistence model to a domain Agency.
func (m *AgencyModel) ToDomain() *partner.Agency {
	return &partner.Agency{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:                 m.Name,
		Code:                 m.Code,
		DiscountLimitPercent: m.DiscountLimitPercent,
		Active:               m.Active,
	}
}

// FromDomain populates the persistence model from a domain Agency.
func (m *AgencyModel) FromDomain(a *partner.Agency) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
	m.Code = a.Code
	m.DiscountLimitPercent = a.DiscountLimitPercent
	m.Active = a.Active
}

// AgencyModelFromDomain creates a new persistence model from a domain Agency.
func AgencyModelFromDomain(a *partner.Agency) *AgencyModel {
	m := &AgencyModel{}
	m.FromDomain(a)
	return m
}

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	AgencyAggregateModel
	Name    string `gorm:"type:varchar(200);not null;index"`
	Phone   string `gorm:"type:varchar(50)"`
	Address string `gorm:"type:varchar(500)"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		AgencyAggregateRoot: m.ToDomainAgencyAggregateRoot(),
		Name:                m.Name,
		Phone:               m.Phone,
		Address:             m.Address,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain Customer.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAgencyAggregateRoot(c.AgencyAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Address = c.Address
	m.Active = c.Active
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
