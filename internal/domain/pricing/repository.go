package pricing

import (
	"context"
	"time"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DiscountRuleRepository persists discount rules
type DiscountRuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DiscountRule, error)
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*DiscountRule, error)
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]DiscountRule, error)
	// FindApplicable returns active rules whose validity window covers the
	// given time, for the GLOBAL scope plus any of the provided scope refs.
	FindApplicable(ctx context.Context, agencyID uuid.UUID, at time.Time, scopeRefs []uuid.UUID) ([]DiscountRule, error)
	Save(ctx context.Context, rule *DiscountRule) error
	SaveWithLock(ctx context.Context, rule *DiscountRule) error
	DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error
	CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error)
}
