package partner

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Customer represents a customer owned by an agency
type Customer struct {
	shared.AgencyAggregateRoot
	Name    string
	Phone   string
	Address string
	Active  bool
}

// NewCustomer creates a new customer
func NewCustomer(agencyID uuid.UUID, name, phone, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}

	return &Customer{
		AgencyAggregateRoot: shared.NewAgencyAggregateRoot(agencyID),
		Name:                name,
		Phone:               phone,
		Address:             address,
		Active:              true,
	}, nil
}

// UpdateContact updates the customer's contact details
func (c *Customer) UpdateContact(phone, address string) {
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()
}

// Rename changes the customer name
func (c *Customer) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate marks the customer inactive
func (c *Customer) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}

// Activate marks the customer active
func (c *Customer) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
}
