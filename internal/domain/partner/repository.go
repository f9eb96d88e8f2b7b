package partner

import (
	"context"

	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository persists customers
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByIDForAgency(ctx context.Context, agencyID, id uuid.UUID) (*Customer, error)
	FindAllForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	DeleteForAgency(ctx context.Context, agencyID, id uuid.UUID) error
	CountForAgency(ctx context.Context, agencyID uuid.UUID, filter shared.Filter) (int64, error)
}

// AgencyRepository persists agencies
type AgencyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Agency, error)
	FindByCode(ctx context.Context, code string) (*Agency, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Agency, error)
	Save(ctx context.Context, agency *Agency) error
}
