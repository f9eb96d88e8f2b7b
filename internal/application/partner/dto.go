package partner

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is the request to create a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

// UpdateCustomerRequest is the request to update a customer's details
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=200"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}

// CustomerListFilter is the query filter for customer listing
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse is the customer representation returned to clients
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	AgencyID  uuid.UUID `json:"agency_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a customer entity to its response form
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		AgencyID:  c.AgencyID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CreateAgencyRequest is the request to create an agency
type CreateAgencyRequest struct {
	Name string `json:"name" binding:"required,max=200"`
	Code string `json:"code" binding:"required,max=50"`
}

// SetDiscountLimitRequest configures an agency's discount approval ceiling.
// A nil limit reverts the agency to the policy default.
type SetDiscountLimitRequest struct {
	LimitPercent *decimal.Decimal `json:"limit_percent"`
}

// AgencyResponse is the agency representation returned to clients
type AgencyResponse struct {
	ID                   uuid.UUID        `json:"id"`
	Name                 string           `json:"name"`
	Code                 string           `json:"code"`
	DiscountLimitPercent *decimal.Decimal `json:"discount_limit_percent,omitempty"`
	Active               bool             `json:"active"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// ToAgencyResponse converts an agency entity to its response form
func ToAgencyResponse(a *partner.Agency) AgencyResponse {
	return AgencyResponse{
		ID:                   a.ID,
		Name:                 a.Name,
		Code:                 a.Code,
		DiscountLimitPercent: a.DiscountLimitPercent,
		Active:               a.Active,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}
