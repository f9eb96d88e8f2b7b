package partner

import (
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Agency represents a franchise unit. Agencies own customers, orders and an
// inventory pool, and may carry their own discount approval limit.
type Agency struct {
	shared.BaseAggregateRoot
	Name string
	Code string
	// DiscountLimitPercent is the maximum discount an agent of this agency
	// may apply without superuser approval. Nil means the policy default.
	DiscountLimitPercent *decimal.Decimal
	Active               bool
}

// NewAgency creates a new agency
func NewAgency(name, code string) (*Agency, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Agency name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Agency code cannot be empty")
	}

	return &Agency{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		Active:            true,
	}, nil
}

// SetDiscountLimit configures the agency's discount approval ceiling
func (a *Agency) SetDiscountLimit(limitPercent decimal.Decimal) error {
	if limitPercent.IsNegative() {
		return shared.NewDomainError("INVALID_LIMIT", "Discount limit cannot be negative")
	}
	if limitPercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_LIMIT", "Discount limit cannot exceed 100%")
	}
	a.DiscountLimitPercent = &limitPercent
	a.UpdatedAt = time.Now()
	return nil
}

// ClearDiscountLimit reverts the agency to the policy default limit
func (a *Agency) ClearDiscountLimit() {
	a.DiscountLimitPercent = nil
	a.UpdatedAt = time.Now()
}

// Deactivate marks the agency inactive
func (a *Agency) Deactivate() {
	a.Active = false
	a.UpdatedAt = time.Now()
}
